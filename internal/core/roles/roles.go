// Package roles is the static role-permission table.
// Lookups are pure; an unknown role yields no capabilities and no actions.
package roles

import "strings"

// Role identifiers.
const (
	Admin               = "admin"
	Engineer            = "engineer"
	Supervisor          = "supervisor"
	Inspector           = "inspector"
	Technician          = "technician"
	Planner             = "planner"
	QualityControl      = "qualitycontrol"
	Manager             = "manager"
	Viewer              = "viewer"
	Scheduler           = "scheduler"
	SafetyOfficer       = "safetyofficer"
	Logistics           = "logistics"
	InventoryManager    = "inventorymanager"
	Documentation       = "documentation"
	TrainingCoordinator = "trainingcoordinator"
	FlightOps           = "flightops"
	ComplianceOfficer   = "complianceofficer"
	DataAnalyst         = "dataanalyst"
	Helpdesk            = "helpdesk"
)

// Action keys referenced by the engine.
const (
	ActionApproveReject          = "approve_reject"
	ActionApproveRejectCompleted = "approve_reject_completed"
	ActionQCApprove              = "qc_approve"
	ActionQCChecks               = "qc_checks"
	ActionSubmitInspection       = "submit_inspection"
	ActionViewAllTasks           = "view_all_tasks"
	ActionViewMyTasks            = "view_my_tasks"
	ActionRepairRequests         = "repair_requests"
)

// Capabilities are the boolean permissions granted to a role.
type Capabilities struct {
	CanAssign       bool `json:"can_assign"`
	CanMarkComplete bool `json:"can_mark_complete"`
	CanManageUsers  bool `json:"can_manage_users"`
	CanCreateTask   bool `json:"can_create_task"`
}

// Action is a named toolbar action available to a role.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var allRoles = []string{
	Admin, Engineer, Supervisor, Inspector, Technician, Planner,
	QualityControl, Manager, Viewer, Scheduler, SafetyOfficer, Logistics,
	InventoryManager, Documentation, TrainingCoordinator, FlightOps,
	ComplianceOfficer, DataAnalyst, Helpdesk,
}

var capabilities = map[string]Capabilities{
	Admin:               {CanAssign: true, CanMarkComplete: true, CanManageUsers: true, CanCreateTask: true},
	Manager:             {CanAssign: true, CanCreateTask: true},
	Planner:             {CanAssign: true, CanCreateTask: true},
	Engineer:            {CanMarkComplete: true},
	Technician:          {CanMarkComplete: true},
	Supervisor:          {CanAssign: true},
	QualityControl:      {},
	Inspector:           {},
	Viewer:              {},
	Scheduler:           {CanAssign: true},
	SafetyOfficer:       {},
	Logistics:           {},
	InventoryManager:    {},
	Documentation:       {},
	TrainingCoordinator: {CanAssign: true},
	FlightOps:           {CanAssign: true},
	ComplianceOfficer:   {},
	DataAnalyst:         {},
	Helpdesk:            {CanAssign: true},
}

var actions = map[string][]Action{
	Admin: {
		{ActionViewAllTasks, "View All Tasks"},
		{"manage_users", "Manage Users"},
		{ActionApproveReject, "Approve / Reject Tasks"},
	},
	Engineer: {
		{ActionViewMyTasks, "View My Tasks"},
		{"mark_complete", "Mark Selected Task Completed"},
	},
	Supervisor: {
		{"view_progress", "View Engineers' Progress"},
		{ActionApproveRejectCompleted, "Approve/Reject Completed"},
	},
	Inspector: {
		{"safety_checklist", "Safety Inspection Checklist"},
		{ActionSubmitInspection, "Submit Inspection Report"},
	},
	Technician: {
		{ActionRepairRequests, "View Repair Requests"},
		{"update_repair_status", "Update Repair Status"},
	},
	Planner: {
		{"create_task", "Create Maintenance Task"},
		{"assign_task", "Assign Tasks to Engineers"},
	},
	QualityControl: {
		{ActionQCChecks, "Perform Quality Checks"},
		{ActionQCApprove, "Approve/Reject by QC"},
	},
	Manager: {
		{"team_reports", "Team Performance Reports"},
		{"assign_roles", "Assign Roles to Staff"},
	},
	Viewer: {
		{"view_tasks_reports", "View Tasks & Reports (Read-Only)"},
	},
	Scheduler: {
		{"maintenance_calendar", "Maintenance Calendar"},
		{"crew_rotation", "Crew Rotation Planning"},
	},
	SafetyOfficer: {
		{"safety_audit", "Run Safety Audit"},
		{"hazard_log", "Manage Hazard Log"},
	},
	Logistics: {
		{"hangar_logistics", "Hangar Logistics"},
		{"shipping", "Parts Shipping"},
	},
	InventoryManager: {
		{"stock_levels", "Check Stock Levels"},
		{"reorder_parts", "Reorder Parts"},
	},
	Documentation: {
		{"manuals", "Manage Manuals"},
		{"procedures", "Update Procedures"},
	},
	TrainingCoordinator: {
		{"training_schedule", "Training Schedule"},
		{"cert_tracking", "Certification Tracking"},
	},
	FlightOps: {
		{"turnarounds", "Turnaround Coordination"},
		{"flight_schedule_sync", "Flight Schedule Sync"},
	},
	ComplianceOfficer: {
		{"reg_checks", "Regulatory Checks"},
		{"audit_prep", "Audit Preparation"},
	},
	DataAnalyst: {
		{"dashboards", "Analytics Dashboards"},
		{"export_reports", "Export KPI Reports"},
	},
	Helpdesk: {
		{"ticket_queue", "Helpdesk Ticket Queue"},
		{"route_requests", "Route Requests"},
	},
}

var displayNames = map[string]string{
	Engineer:            "Line Engineer",
	QualityControl:      "Quality Control",
	SafetyOfficer:       "Safety Officer",
	InventoryManager:    "Inventory Manager",
	TrainingCoordinator: "Training Coordinator",
	FlightOps:           "Flight Operations",
	ComplianceOfficer:   "Compliance Officer",
	DataAnalyst:         "Data Analyst",
}

var actionLabels = map[string]string{
	ActionViewAllTasks:           "View All Work Orders",
	ActionViewMyTasks:            "My Work Orders",
	ActionRepairRequests:         "Repair Requests",
	"create_task":                "Create Work Order",
	"assign_task":                "Assign Work Order",
	ActionApproveReject:          "Approve / Reject",
	ActionApproveRejectCompleted: "Approve / Reject Completed",
	ActionQCApprove:              "QC Approvals",
	"manage_users":               "Manage Users",
	"stock_levels":               "Stock Levels",
	"reorder_parts":              "Reorder Parts",
	"training_schedule":          "Training Schedule",
	"cert_tracking":              "Certification Tracking",
	"team_reports":               "Team Reports",
}

var approveActions = []string{ActionApproveReject, ActionApproveRejectCompleted, ActionQCApprove}

var reviewActions = []string{ActionSubmitInspection, ActionQCChecks}

// All returns every role in display order.
func All() []string {
	out := make([]string, len(allRoles))
	copy(out, allRoles)
	return out
}

// IsValid reports whether role is one of the predefined roles.
func IsValid(role string) bool {
	_, ok := capabilities[role]
	return ok
}

// CapabilitiesFor returns the capability set for role.
func CapabilitiesFor(role string) Capabilities {
	return capabilities[role]
}

// ActionsFor returns the ordered actions for role.
func ActionsFor(role string) []Action {
	src := actions[role]
	out := make([]Action, len(src))
	copy(out, src)
	return out
}

// HasAction reports whether role carries the action key.
func HasAction(role, key string) bool {
	for _, a := range actions[role] {
		if a.Key == key {
			return true
		}
	}
	return false
}

// HasAnyAction reports whether role carries at least one of keys.
func HasAnyAction(role string, keys ...string) bool {
	for _, k := range keys {
		if HasAction(role, k) {
			return true
		}
	}
	return false
}

// CanApprove reports whether role may approve or reject work orders.
func CanApprove(role string) bool {
	return HasAnyAction(role, approveActions...)
}

// CanReview reports whether role may move a completed work order into review.
func CanReview(role string) bool {
	return CanApprove(role) || HasAnyAction(role, reviewActions...)
}

// DisplayName returns the human name for role, title-casing unknown ones.
func DisplayName(role string) string {
	if name, ok := displayNames[role]; ok {
		return name
	}
	if role == "" {
		return ""
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

// ActionLabel returns the preferred label for an action key.
func ActionLabel(key, fallback string) string {
	if label, ok := actionLabels[key]; ok {
		return label
	}
	return fallback
}
