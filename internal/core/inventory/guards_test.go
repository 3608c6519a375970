package inventory

import "testing"

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		qty, delta, want int
	}{
		{2, -10, 0},
		{2, -2, 0},
		{2, 3, 5},
		{0, -1, 0},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := ApplyDelta(tt.qty, tt.delta); got != tt.want {
			t.Errorf("ApplyDelta(%d, %d) = %d, want %d", tt.qty, tt.delta, got, tt.want)
		}
	}
}

func TestIsLow(t *testing.T) {
	if !IsLow(1, 2) {
		t.Error("1 < 2 should be low")
	}
	if IsLow(2, 2) {
		t.Error("qty equal to min_qty is not low")
	}
	if IsLow(0, 0) {
		t.Error("0/0 is not low")
	}
}

func TestCanUpsertItem(t *testing.T) {
	tests := []struct {
		name        string
		ctx         UpsertContext
		wantAllowed bool
		wantReason  string
	}{
		{"valid", UpsertContext{PartNo: "P-100", Name: "Brake pad", Qty: 4, MinQty: 2}, true, ""},
		{"missing part number", UpsertContext{Name: "Brake pad"}, false, "part number is required"},
		{"missing name", UpsertContext{PartNo: "P-100"}, false, "part name is required"},
		{"negative qty", UpsertContext{PartNo: "P-100", Name: "x", Qty: -1}, false, "quantity cannot be negative (got -1)"},
		{"negative min", UpsertContext{PartNo: "P-100", Name: "x", MinQty: -3}, false, "minimum quantity cannot be negative (got -3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CanUpsertItem(tt.ctx)
			if r.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", r.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && r.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", r.Reason, tt.wantReason)
			}
		})
	}
}
