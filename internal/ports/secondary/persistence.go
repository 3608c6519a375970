// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// Collection names. Each names one whole document in a CollectionStore.
const (
	CollectionUsers    = "users"
	CollectionTasks    = "tasks"
	CollectionAirbases = "airbases"
	CollectionAircraft = "aircraft"
	CollectionStock    = "stock"
	CollectionTraining = "training"
	CollectionAudit    = "audit"
)

// CollectionStore loads and saves whole named collections.
// Load of an absent or unreadable collection leaves dest at its zero value
// and returns nil.
type CollectionStore interface {
	// Load decodes the named collection into dest.
	Load(ctx context.Context, name string, dest any) error

	// Save replaces the named collection with v.
	Save(ctx context.Context, name string, v any) error
}

// TaskRepository defines the secondary port for work order persistence.
type TaskRepository interface {
	// Create assigns the next id (max+1, 1 when empty), sets version 1 and persists the task.
	Create(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task by its id.
	GetByID(ctx context.Context, id int) (*TaskRecord, error)

	// List retrieves tasks matching every non-empty filter field.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// Update merges the non-nil patch fields into task id.
	// expectedVersion > 0 must equal the stored version.
	Update(ctx context.Context, id int, patch TaskPatch, expectedVersion int) (*TaskRecord, error)
}

// TaskRecord represents a work order as stored in persistence.
type TaskRecord struct {
	ID           int
	Title        string
	Details      string
	AssignedTo   string // Empty string means null
	Status       string
	BaseID       string
	AircraftTail string
	Version      int
	CreatedAt    string
	UpdatedAt    string
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	BaseID       string
	AircraftTail string
	AssignedTo   string
	Status       string
}

// TaskPatch lists the fields to change; nil means leave as is.
type TaskPatch struct {
	Title      *string
	Details    *string
	AssignedTo *string
	Status     *string
}

// UserRepository defines the secondary port for user persistence.
type UserRepository interface {
	// GetByUsername retrieves a user by name.
	GetByUsername(ctx context.Context, username string) (*UserRecord, error)

	// List retrieves all users in stored order.
	List(ctx context.Context) ([]*UserRecord, error)

	// Create persists a new user. Duplicate usernames are a conflict.
	Create(ctx context.Context, user *UserRecord) error

	// Delete removes a user.
	Delete(ctx context.Context, username string) error

	// UpdatePassword replaces the stored password value.
	UpdatePassword(ctx context.Context, username, password string) error

	// Exists reports whether username is registered.
	Exists(ctx context.Context, username string) (bool, error)
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	Username string
	Password string // bcrypt hash, or legacy plaintext until first login
	Role     string
}

// FleetRepository defines the secondary port for the read-only airbase and aircraft registry.
type FleetRepository interface {
	// ListAirbases retrieves all airbases.
	ListAirbases(ctx context.Context) ([]*AirbaseRecord, error)

	// GetAirbase retrieves an airbase by id.
	GetAirbase(ctx context.Context, id string) (*AirbaseRecord, error)

	// ListAircraft retrieves aircraft, filtered by base when baseID is non-empty.
	ListAircraft(ctx context.Context, baseID string) ([]*AircraftRecord, error)

	// GetAircraft retrieves an aircraft by tail.
	GetAircraft(ctx context.Context, tail string) (*AircraftRecord, error)
}

// AirbaseRecord represents an airbase as stored in persistence.
type AirbaseRecord struct {
	ID   string
	Name string
}

// AircraftRecord represents an aircraft as stored in persistence.
type AircraftRecord struct {
	Tail   string
	BaseID string
	Model  string
}

// StockRepository defines the secondary port for inventory persistence.
type StockRepository interface {
	// List retrieves all items in stored order.
	List(ctx context.Context) ([]*StockItemRecord, error)

	// Get retrieves an item by part number.
	Get(ctx context.Context, partNo string) (*StockItemRecord, error)

	// Upsert replaces the item with the same part number or appends it.
	Upsert(ctx context.Context, item *StockItemRecord) error

	// Modify applies fn to the stored item under the collection lock and persists the result.
	Modify(ctx context.Context, partNo string, fn func(*StockItemRecord)) (*StockItemRecord, error)

	// Delete removes an item.
	Delete(ctx context.Context, partNo string) error
}

// StockItemRecord represents an inventory item as stored in persistence.
type StockItemRecord struct {
	PartNo string
	Name   string
	Qty    int
	MinQty int
}

// TrainingRepository defines the secondary port for training records.
type TrainingRepository interface {
	// ListSessions retrieves all sessions.
	ListSessions(ctx context.Context) ([]*TrainingSessionRecord, error)

	// GetSession retrieves a session by id.
	GetSession(ctx context.Context, id int) (*TrainingSessionRecord, error)

	// CreateSession assigns the next id (max+1) and persists the session.
	CreateSession(ctx context.Context, session *TrainingSessionRecord) error

	// ListAssignments retrieves assignments, filtered by user when non-empty.
	ListAssignments(ctx context.Context, user string) ([]*TrainingAssignmentRecord, error)

	// AddAssignment appends the assignment unless (user, session_id) already exists.
	// Returns whether a new assignment was written.
	AddAssignment(ctx context.Context, assignment *TrainingAssignmentRecord) (bool, error)

	// SetAssignmentStatus updates the status of an existing (user, session_id) pair.
	SetAssignmentStatus(ctx context.Context, user string, sessionID int, status string) error
}

// TrainingSessionRecord represents a training session as stored in persistence.
type TrainingSessionRecord struct {
	ID    int
	Title string
	Date  string
}

// TrainingAssignmentRecord represents a user's place on a session.
type TrainingAssignmentRecord struct {
	User      string
	SessionID int
	Status    string
}

// AuditRepository defines the secondary port for the append-only audit log.
type AuditRepository interface {
	// Append persists an entry.
	Append(ctx context.Context, entry *AuditRecord) error

	// List retrieves entries newest first, matching every non-empty filter field.
	List(ctx context.Context, filters AuditFilters) ([]*AuditRecord, error)
}

// AuditRecord represents an audit entry as stored in persistence.
type AuditRecord struct {
	ID         string
	At         string
	Actor      string
	EntityType string
	EntityID   string
	Action     string
	Field      string
	OldValue   string
	NewValue   string
}

// AuditFilters contains filter options for querying the audit log.
type AuditFilters struct {
	EntityType string
	EntityID   string
	Actor      string
	Limit      int
}
