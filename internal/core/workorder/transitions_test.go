package workorder

import "testing"

func TestNext(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		action Action
		want   Status
		wantOK bool
	}{
		{"assign pending", StatusPending, ActionAssign, StatusInProgress, true},
		{"reassign in_progress", StatusInProgress, ActionAssign, StatusInProgress, true},
		{"reassign completed", StatusCompleted, ActionAssign, StatusInProgress, true},
		{"assign approved", StatusApproved, ActionAssign, "", false},
		{"assign rejected", StatusRejected, ActionAssign, "", false},
		{"complete in_progress", StatusInProgress, ActionComplete, StatusCompleted, true},
		{"complete pending", StatusPending, ActionComplete, "", false},
		{"review completed", StatusCompleted, ActionReview, StatusInReview, true},
		{"review in_progress", StatusInProgress, ActionReview, "", false},
		{"approve completed", StatusCompleted, ActionApprove, StatusApproved, true},
		{"approve in_review", StatusInReview, ActionApprove, StatusApproved, true},
		{"approve pending", StatusPending, ActionApprove, "", false},
		{"reject in_review", StatusInReview, ActionReject, StatusRejected, true},
		{"reject approved", StatusApproved, ActionReject, "", false},
		{"unknown action", StatusPending, Action("reopen"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Next(tt.from, tt.action)
			if ok != tt.wantOK {
				t.Fatalf("Next(%q, %q) ok = %v, want %v", tt.from, tt.action, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Next(%q, %q) = %q, want %q", tt.from, tt.action, got, tt.want)
			}
		})
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	actions := []Action{ActionAssign, ActionComplete, ActionReview, ActionApprove, ActionReject}
	for _, s := range []Status{StatusApproved, StatusRejected} {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%q) = false", s)
		}
		for _, a := range actions {
			if _, ok := Next(s, a); ok {
				t.Errorf("Next(%q, %q) allowed from terminal status", s, a)
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus("in_review"); !ok || s != StatusInReview {
		t.Errorf("ParseStatus(in_review) = %q, %v", s, ok)
	}
	if _, ok := ParseStatus("done"); ok {
		t.Error("ParseStatus(done) should fail")
	}
}

func TestStatusPredicates(t *testing.T) {
	if InitialStatus() != StatusPending {
		t.Errorf("InitialStatus() = %q", InitialStatus())
	}
	if !IsInitialStatus(StatusInProgress) || IsInitialStatus(StatusCompleted) {
		t.Error("IsInitialStatus mismatch")
	}
	if !IsApprovable(StatusCompleted) || !IsApprovable(StatusInReview) || IsApprovable(StatusPending) {
		t.Error("IsApprovable mismatch")
	}
	if !IsOpen(StatusPending) || !IsOpen(StatusInProgress) || IsOpen(StatusCompleted) {
		t.Error("IsOpen mismatch")
	}
}

func TestSourceStatuses(t *testing.T) {
	got := SourceStatuses(ActionApprove)
	want := []Status{StatusCompleted, StatusInReview}
	if len(got) != len(want) {
		t.Fatalf("SourceStatuses(approve) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SourceStatuses(approve)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
