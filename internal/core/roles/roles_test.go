package roles

import "testing"

func TestAllRolesHaveEntries(t *testing.T) {
	all := All()
	if len(all) != 19 {
		t.Fatalf("len(All()) = %d, want 19", len(all))
	}
	for _, r := range all {
		if !IsValid(r) {
			t.Errorf("role %q not valid", r)
		}
		if len(ActionsFor(r)) == 0 {
			t.Errorf("role %q has no actions", r)
		}
	}
}

func TestCapabilitiesFor(t *testing.T) {
	tests := []struct {
		role string
		want Capabilities
	}{
		{Admin, Capabilities{CanAssign: true, CanMarkComplete: true, CanManageUsers: true, CanCreateTask: true}},
		{Engineer, Capabilities{CanMarkComplete: true}},
		{Technician, Capabilities{CanMarkComplete: true}},
		{Planner, Capabilities{CanAssign: true, CanCreateTask: true}},
		{Manager, Capabilities{CanAssign: true, CanCreateTask: true}},
		{Supervisor, Capabilities{CanAssign: true}},
		{Helpdesk, Capabilities{CanAssign: true}},
		{Viewer, Capabilities{}},
		{QualityControl, Capabilities{}},
		{"pilot", Capabilities{}},
		{"", Capabilities{}},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := CapabilitiesFor(tt.role); got != tt.want {
				t.Errorf("CapabilitiesFor(%q) = %+v, want %+v", tt.role, got, tt.want)
			}
		})
	}
}

func TestActionsForIsOrderedAndCopied(t *testing.T) {
	got := ActionsFor(Admin)
	want := []string{"view_all_tasks", "manage_users", "approve_reject"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, k := range want {
		if got[i].Key != k {
			t.Errorf("action[%d] = %q, want %q", i, got[i].Key, k)
		}
	}

	got[0].Key = "mutated"
	if ActionsFor(Admin)[0].Key != "view_all_tasks" {
		t.Error("ActionsFor returned the shared slice")
	}

	if len(ActionsFor("pilot")) != 0 {
		t.Error("unknown role should have no actions")
	}
}

func TestCanApprove(t *testing.T) {
	approvers := map[string]bool{Admin: true, Supervisor: true, QualityControl: true}
	for _, r := range All() {
		if got := CanApprove(r); got != approvers[r] {
			t.Errorf("CanApprove(%q) = %v, want %v", r, got, approvers[r])
		}
	}
	if CanApprove("pilot") {
		t.Error("unknown role must not approve")
	}
}

func TestCanReview(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{Admin, true},
		{Supervisor, true},
		{QualityControl, true},
		{Inspector, true},
		{Engineer, false},
		{Viewer, false},
	}
	for _, tt := range tests {
		if got := CanReview(tt.role); got != tt.want {
			t.Errorf("CanReview(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestDisplayNameAndLabels(t *testing.T) {
	if got := DisplayName(Engineer); got != "Line Engineer" {
		t.Errorf("DisplayName(engineer) = %q", got)
	}
	if got := DisplayName(Planner); got != "Planner" {
		t.Errorf("DisplayName(planner) = %q", got)
	}
	if got := ActionLabel("create_task", "x"); got != "Create Work Order" {
		t.Errorf("ActionLabel(create_task) = %q", got)
	}
	if got := ActionLabel("hazard_log", "Manage Hazard Log"); got != "Manage Hazard Log" {
		t.Errorf("ActionLabel fallback = %q", got)
	}
}
