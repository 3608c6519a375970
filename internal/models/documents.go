// Package models holds the document shapes of the persisted collections.
// Field names are the on-disk format and must stay stable.
package models

// Task is one element of the tasks collection.
type Task struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Details      string  `json:"details"`
	AssignedTo   *string `json:"assigned_to"`
	Status       string  `json:"status"`
	BaseID       string  `json:"base_id"`
	AircraftTail string  `json:"aircraft_tail"`
	Version      int     `json:"version,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

// User is one element of the users collection.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Airbase is one element of the airbases collection.
type Airbase struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Aircraft is one element of the aircraft collection.
type Aircraft struct {
	Tail   string `json:"tail"`
	BaseID string `json:"base_id"`
	Model  string `json:"model"`
}

// StockItem is one element of the stock collection.
type StockItem struct {
	PartNo string `json:"part_no"`
	Name   string `json:"name"`
	Qty    int    `json:"qty"`
	MinQty int    `json:"min_qty"`
}

// Training is the whole training collection.
type Training struct {
	Sessions    []TrainingSession    `json:"sessions"`
	Assignments []TrainingAssignment `json:"assignments"`
}

// TrainingSession is a scheduled training event.
type TrainingSession struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// TrainingAssignment links a user to a session.
type TrainingAssignment struct {
	User      string `json:"user"`
	SessionID int    `json:"session_id"`
	Status    string `json:"status"`
}

// AuditEntry is one element of the audit collection.
type AuditEntry struct {
	ID         string `json:"id"`
	At         string `json:"at"`
	Actor      string `json:"actor"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Action     string `json:"action"`
	Field      string `json:"field,omitempty"`
	OldValue   string `json:"old_value,omitempty"`
	NewValue   string `json:"new_value,omitempty"`
}

// NextTaskID returns one more than the highest task id, or 1 when empty.
func NextTaskID(tasks []Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// NextSessionID returns one more than the highest session id, or 1 when empty.
func NextSessionID(sessions []TrainingSession) int {
	highest := 0
	for _, s := range sessions {
		if s.ID > highest {
			highest = s.ID
		}
	}
	return highest + 1
}
