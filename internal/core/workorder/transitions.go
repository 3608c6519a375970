// Package workorder contains the pure business logic for the work order
// lifecycle. No I/O, only the transition table and the guards that gate it.
package workorder

// Status represents the possible states of a work order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusInReview   Status = "in_review"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// Action names a lifecycle command.
type Action string

const (
	ActionAssign   Action = "assign"
	ActionComplete Action = "mark_complete"
	ActionReview   Action = "review"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
)

var validStatuses = map[Status]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusInReview:   {},
	StatusApproved:   {},
	StatusRejected:   {},
}

// transitions maps action -> allowed source statuses -> target status.
var transitions = map[Action]map[Status]Status{
	ActionAssign: {
		StatusPending:    StatusInProgress,
		StatusInProgress: StatusInProgress,
		StatusCompleted:  StatusInProgress,
		StatusInReview:   StatusInProgress,
	},
	ActionComplete: {
		StatusInProgress: StatusCompleted,
	},
	ActionReview: {
		StatusCompleted: StatusInReview,
	},
	ActionApprove: {
		StatusCompleted: StatusApproved,
		StatusInReview:  StatusApproved,
	},
	ActionReject: {
		StatusCompleted: StatusRejected,
		StatusInReview:  StatusRejected,
	},
}

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	_, ok := validStatuses[st]
	return st, ok
}

// InitialStatus returns the status for a new work order when none is given.
func InitialStatus() Status {
	return StatusPending
}

// IsInitialStatus reports whether s may be used when creating a work order.
func IsInitialStatus(s Status) bool {
	return s == StatusPending || s == StatusInProgress
}

// IsTerminal reports whether no further transition is defined from s.
func IsTerminal(s Status) bool {
	return s == StatusApproved || s == StatusRejected
}

// IsApprovable reports whether s is awaiting an approval decision.
func IsApprovable(s Status) bool {
	return s == StatusCompleted || s == StatusInReview
}

// IsOpen reports whether s counts as outstanding work.
func IsOpen(s Status) bool {
	return s == StatusPending || s == StatusInProgress
}

// Next returns the target status of applying action from current.
func Next(current Status, action Action) (Status, bool) {
	to, ok := transitions[action][current]
	return to, ok
}

// SourceStatuses lists the statuses from which action is legal, in a stable order.
func SourceStatuses(action Action) []Status {
	order := []Status{StatusPending, StatusInProgress, StatusCompleted, StatusInReview, StatusApproved, StatusRejected}
	var out []Status
	for _, s := range order {
		if _, ok := transitions[action][s]; ok {
			out = append(out, s)
		}
	}
	return out
}
