package app

import (
	"context"
	"sort"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/ctxutil"
	"github.com/example/esys/internal/ports/secondary"
)

// asActor returns a context carrying the given user, role and selected context.
func asActor(username, role, baseID, tail string) context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{
		Username: username,
		Role:     role,
		BaseID:   baseID,
		Tail:     tail,
	})
}

// ============================================================================
// Mock TaskRepository
// ============================================================================

var _ secondary.TaskRepository = (*mockTaskRepository)(nil)

type mockTaskRepository struct {
	tasks       map[int]*secondary.TaskRecord
	updateCalls int
	createErr   error
	listErr     error
	updateErr   error

	// afterGet runs once, after GetByID has taken its snapshot.
	afterGet func()
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[int]*secondary.TaskRecord)}
}

func (m *mockTaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	task.ID = len(m.tasks) + 1
	for id := range m.tasks {
		if id >= task.ID {
			task.ID = id + 1
		}
	}
	task.Version = 1
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, id int) (*secondary.TaskRecord, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, apperr.NotFound("work order #%d not found", id)
	}
	out := *t
	if hook := m.afterGet; hook != nil {
		m.afterGet = nil
		hook()
	}
	return &out, nil
}

func (m *mockTaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*secondary.TaskRecord
	for _, t := range m.tasks {
		if filters.BaseID != "" && t.BaseID != filters.BaseID {
			continue
		}
		if filters.AircraftTail != "" && t.AircraftTail != filters.AircraftTail {
			continue
		}
		if filters.AssignedTo != "" && t.AssignedTo != filters.AssignedTo {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockTaskRepository) Update(ctx context.Context, id int, patch secondary.TaskPatch, expectedVersion int) (*secondary.TaskRecord, error) {
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	t, ok := m.tasks[id]
	if !ok {
		return nil, apperr.NotFound("work order #%d not found", id)
	}
	if expectedVersion > 0 && expectedVersion != t.Version {
		return nil, apperr.Conflict("work order #%d was modified (version %d, expected %d)", id, t.Version, expectedVersion)
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Details != nil {
		t.Details = *patch.Details
	}
	if patch.AssignedTo != nil {
		t.AssignedTo = *patch.AssignedTo
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.Version++
	out := *t
	return &out, nil
}

// ============================================================================
// Mock UserRepository
// ============================================================================

var _ secondary.UserRepository = (*mockUserRepository)(nil)

type mockUserRepository struct {
	users             map[string]*secondary.UserRecord
	order             []string
	updatePasswordErr error
}

func newMockUserRepository(users ...*secondary.UserRecord) *mockUserRepository {
	m := &mockUserRepository{users: make(map[string]*secondary.UserRecord)}
	for _, u := range users {
		m.users[u.Username] = u
		m.order = append(m.order, u.Username)
	}
	return m
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*secondary.UserRecord, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, apperr.NotFound("user %s not found", username)
	}
	out := *u
	return &out, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	out := make([]*secondary.UserRecord, 0, len(m.order))
	for _, name := range m.order {
		u := *m.users[name]
		out = append(out, &u)
	}
	return out, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	if _, ok := m.users[user.Username]; ok {
		return apperr.Conflict("username %s already exists", user.Username)
	}
	stored := *user
	m.users[user.Username] = &stored
	m.order = append(m.order, user.Username)
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, username string) error {
	if _, ok := m.users[username]; !ok {
		return apperr.NotFound("user %s not found", username)
	}
	delete(m.users, username)
	for i, name := range m.order {
		if name == username {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, username, password string) error {
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	u, ok := m.users[username]
	if !ok {
		return apperr.NotFound("user %s not found", username)
	}
	u.Password = password
	return nil
}

func (m *mockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	_, ok := m.users[username]
	return ok, nil
}

// ============================================================================
// Mock FleetRepository
// ============================================================================

var _ secondary.FleetRepository = (*mockFleetRepository)(nil)

type mockFleetRepository struct {
	airbases []*secondary.AirbaseRecord
	aircraft []*secondary.AircraftRecord
}

// newMockFleetRepository returns the seeded Oman fleet.
func newMockFleetRepository() *mockFleetRepository {
	return &mockFleetRepository{
		airbases: []*secondary.AirbaseRecord{
			{ID: "OOMS", Name: "Muscat International"},
			{ID: "OOSA", Name: "Salalah"},
		},
		aircraft: []*secondary.AircraftRecord{
			{Tail: "A6-ABC", BaseID: "OOMS", Model: "A320"},
			{Tail: "A6-DEF", BaseID: "OOMS", Model: "B737-800"},
			{Tail: "A4O-SLL", BaseID: "OOSA", Model: "ATR 72"},
		},
	}
}

func (m *mockFleetRepository) ListAirbases(ctx context.Context) ([]*secondary.AirbaseRecord, error) {
	return m.airbases, nil
}

func (m *mockFleetRepository) GetAirbase(ctx context.Context, id string) (*secondary.AirbaseRecord, error) {
	for _, b := range m.airbases {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperr.NotFound("airbase %s not found", id)
}

func (m *mockFleetRepository) ListAircraft(ctx context.Context, baseID string) ([]*secondary.AircraftRecord, error) {
	var out []*secondary.AircraftRecord
	for _, a := range m.aircraft {
		if baseID == "" || a.BaseID == baseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockFleetRepository) GetAircraft(ctx context.Context, tail string) (*secondary.AircraftRecord, error) {
	for _, a := range m.aircraft {
		if a.Tail == tail {
			return a, nil
		}
	}
	return nil, apperr.NotFound("aircraft %s not found", tail)
}

// ============================================================================
// Mock StockRepository
// ============================================================================

var _ secondary.StockRepository = (*mockStockRepository)(nil)

type mockStockRepository struct {
	items []*secondary.StockItemRecord
}

func newMockStockRepository(items ...*secondary.StockItemRecord) *mockStockRepository {
	return &mockStockRepository{items: items}
}

func (m *mockStockRepository) find(partNo string) int {
	for i, item := range m.items {
		if item.PartNo == partNo {
			return i
		}
	}
	return -1
}

func (m *mockStockRepository) List(ctx context.Context) ([]*secondary.StockItemRecord, error) {
	out := make([]*secondary.StockItemRecord, len(m.items))
	for i, item := range m.items {
		c := *item
		out[i] = &c
	}
	return out, nil
}

func (m *mockStockRepository) Get(ctx context.Context, partNo string) (*secondary.StockItemRecord, error) {
	i := m.find(partNo)
	if i < 0 {
		return nil, apperr.NotFound("part %s not found", partNo)
	}
	c := *m.items[i]
	return &c, nil
}

func (m *mockStockRepository) Upsert(ctx context.Context, item *secondary.StockItemRecord) error {
	c := *item
	if i := m.find(item.PartNo); i >= 0 {
		m.items[i] = &c
		return nil
	}
	m.items = append(m.items, &c)
	return nil
}

func (m *mockStockRepository) Modify(ctx context.Context, partNo string, fn func(*secondary.StockItemRecord)) (*secondary.StockItemRecord, error) {
	i := m.find(partNo)
	if i < 0 {
		return nil, apperr.NotFound("part %s not found", partNo)
	}
	fn(m.items[i])
	c := *m.items[i]
	return &c, nil
}

func (m *mockStockRepository) Delete(ctx context.Context, partNo string) error {
	i := m.find(partNo)
	if i < 0 {
		return apperr.NotFound("part %s not found", partNo)
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

// ============================================================================
// Mock TrainingRepository
// ============================================================================

var _ secondary.TrainingRepository = (*mockTrainingRepository)(nil)

type mockTrainingRepository struct {
	sessions    []*secondary.TrainingSessionRecord
	assignments []*secondary.TrainingAssignmentRecord
	addCalls    int
}

func newMockTrainingRepository() *mockTrainingRepository {
	return &mockTrainingRepository{}
}

func (m *mockTrainingRepository) ListSessions(ctx context.Context) ([]*secondary.TrainingSessionRecord, error) {
	return m.sessions, nil
}

func (m *mockTrainingRepository) GetSession(ctx context.Context, id int) (*secondary.TrainingSessionRecord, error) {
	for _, s := range m.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperr.NotFound("training session %d not found", id)
}

func (m *mockTrainingRepository) CreateSession(ctx context.Context, session *secondary.TrainingSessionRecord) error {
	session.ID = 1
	for _, s := range m.sessions {
		if s.ID >= session.ID {
			session.ID = s.ID + 1
		}
	}
	c := *session
	m.sessions = append(m.sessions, &c)
	return nil
}

func (m *mockTrainingRepository) ListAssignments(ctx context.Context, user string) ([]*secondary.TrainingAssignmentRecord, error) {
	var out []*secondary.TrainingAssignmentRecord
	for _, a := range m.assignments {
		if user == "" || a.User == user {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *mockTrainingRepository) AddAssignment(ctx context.Context, assignment *secondary.TrainingAssignmentRecord) (bool, error) {
	m.addCalls++
	for _, a := range m.assignments {
		if a.User == assignment.User && a.SessionID == assignment.SessionID {
			return false, nil
		}
	}
	c := *assignment
	m.assignments = append(m.assignments, &c)
	return true, nil
}

func (m *mockTrainingRepository) SetAssignmentStatus(ctx context.Context, user string, sessionID int, status string) error {
	for _, a := range m.assignments {
		if a.User == user && a.SessionID == sessionID {
			a.Status = status
			return nil
		}
	}
	return apperr.NotFound("%s is not assigned to session %d", user, sessionID)
}

// ============================================================================
// Mock AuditRepository and LogWriter
// ============================================================================

var _ secondary.AuditRepository = (*mockAuditRepository)(nil)

type mockAuditRepository struct {
	entries []*secondary.AuditRecord
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *secondary.AuditRecord) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	var out []*secondary.AuditRecord
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if filters.EntityType != "" && e.EntityType != filters.EntityType {
			continue
		}
		if filters.EntityID != "" && e.EntityID != filters.EntityID {
			continue
		}
		out = append(out, e)
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out, nil
}

var _ secondary.LogWriter = (*mockLogWriter)(nil)

type loggedOp struct {
	action     string
	entityType string
	entityID   string
	field      string
	oldValue   string
	newValue   string
}

type mockLogWriter struct {
	ops []loggedOp
	err error
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.ops = append(m.ops, loggedOp{action: "create", entityType: entityType, entityID: entityID})
	return m.err
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.ops = append(m.ops, loggedOp{
		action:     "update",
		entityType: entityType,
		entityID:   entityID,
		field:      fieldName,
		oldValue:   oldValue,
		newValue:   newValue,
	})
	return m.err
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.ops = append(m.ops, loggedOp{action: "delete", entityType: entityType, entityID: entityID})
	return m.err
}
