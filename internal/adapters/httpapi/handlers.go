package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/esys/internal/apperr"
	corefleet "github.com/example/esys/internal/core/fleet"
	"github.com/example/esys/internal/core/roles"
	"github.com/example/esys/internal/ctxutil"
	"github.com/example/esys/internal/ports/primary"
)

// Services bundles the primary ports served by the API.
type Services struct {
	WorkOrders primary.WorkOrderService
	Fleet      primary.FleetService
	Users      primary.UserService
	Inventory  primary.InventoryService
	Training   primary.TrainingService
	Summary    primary.SummaryService
	Audit      primary.AuditService
}

// ReadinessChecker reports whether the backing store can serve requests.
type ReadinessChecker interface {
	CheckReady(ctx context.Context) error
}

// Handler implements the API endpoints.
type Handler struct {
	svc    Services
	tokens *TokenIssuer
	logger *slog.Logger
	ready  ReadinessChecker
}

// NewHandler creates a Handler.
func NewHandler(svc Services, tokens *TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeServiceError(w, r, h.logger, err)
}

// --- session ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type contextRequest struct {
	BaseID       string `json:"base_id"`
	AircraftTail string `json:"aircraft_tail"`
}

type tokenResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *primary.User `json:"user"`
	BaseID    string        `json:"base_id,omitempty"`
	Tail      string        `json:"aircraft_tail,omitempty"`
}

type meResponse struct {
	Username     string             `json:"username"`
	Role         string             `json:"role"`
	RoleName     string             `json:"role_name"`
	BaseID       string             `json:"base_id,omitempty"`
	Tail         string             `json:"aircraft_tail,omitempty"`
	Capabilities roles.Capabilities `json:"capabilities"`
	Actions      []roles.Action     `json:"actions"`
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.svc.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			WriteError(w, http.StatusUnauthorized, CodeUnauthorized, err.Error())
			return
		}
		h.fail(w, r, err)
		return
	}

	h.writeToken(w, r, ctxutil.Actor{Username: user.Username, Role: user.Role})
}

// SetContext validates a base/aircraft pair and returns a token carrying it.
func (h *Handler) SetContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tail := corefleet.NormalizeTail(req.AircraftTail)
	if err := h.svc.Fleet.ResolveContext(r.Context(), req.BaseID, tail); err != nil {
		h.fail(w, r, err)
		return
	}

	actor, _ := ctxutil.ActorFromContext(r.Context())
	actor.BaseID = req.BaseID
	actor.Tail = tail
	h.writeToken(w, r, actor)
}

func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, actor ctxutil.Actor) {
	token, expires, err := h.tokens.Issue(actor)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: expires,
		User:      &primary.User{Username: actor.Username, Role: actor.Role},
		BaseID:    actor.BaseID,
		Tail:      actor.Tail,
	})
}

// Me describes the authenticated actor and what their role may do.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, _ := ctxutil.ActorFromContext(r.Context())
	writeJSON(w, http.StatusOK, meResponse{
		Username:     actor.Username,
		Role:         actor.Role,
		RoleName:     roles.DisplayName(actor.Role),
		BaseID:       actor.BaseID,
		Tail:         actor.Tail,
		Capabilities: roles.CapabilitiesFor(actor.Role),
		Actions:      roles.ActionsFor(actor.Role),
	})
}

// --- fleet ---

// ListAirbases lists all airbases.
func (h *Handler) ListAirbases(w http.ResponseWriter, r *http.Request) {
	bases, err := h.svc.Fleet.ListAirbases(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bases)
}

// ListAircraft lists the aircraft at a base.
func (h *Handler) ListAircraft(w http.ResponseWriter, r *http.Request) {
	aircraft, err := h.svc.Fleet.AircraftFor(r.Context(), chi.URLParam(r, "baseID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, aircraft)
}

// GetAircraft returns one aircraft by tail.
func (h *Handler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	aircraft, err := h.svc.Fleet.FindAircraft(r.Context(), chi.URLParam(r, "tail"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, aircraft)
}

// --- work orders ---

type createWorkOrderRequest struct {
	Title        string `json:"title"`
	Details      string `json:"details"`
	AssignedTo   string `json:"assigned_to"`
	Status       string `json:"status"`
	BaseID       string `json:"base_id"`
	AircraftTail string `json:"aircraft_tail"`
}

type assignRequest struct {
	Assignee string `json:"assignee"`
	Version  int    `json:"version"`
}

type transitionRequest struct {
	Version int `json:"version"`
}

type updateWorkOrderRequest struct {
	Title   *string `json:"title"`
	Details *string `json:"details"`
	Version int     `json:"version"`
}

// ListWorkOrders lists work orders by filter, or by role view when ?view= is set.
func (h *Handler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		orders []*primary.WorkOrder
		err    error
	)
	if view := q.Get("view"); view != "" {
		orders, err = h.svc.WorkOrders.ListForView(r.Context(), view)
	} else {
		orders, err = h.svc.WorkOrders.ListWorkOrders(r.Context(), primary.WorkOrderFilters{
			BaseID:       q.Get("base_id"),
			AircraftTail: q.Get("aircraft_tail"),
			AssignedTo:   q.Get("assigned_to"),
			Status:       q.Get("status"),
		})
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// CreateWorkOrder creates a work order.
func (h *Handler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req createWorkOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.svc.WorkOrders.CreateWorkOrder(r.Context(), primary.CreateWorkOrderRequest{
		Title:        req.Title,
		Details:      req.Details,
		AssignedTo:   req.AssignedTo,
		Status:       req.Status,
		BaseID:       req.BaseID,
		AircraftTail: req.AircraftTail,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp.WorkOrder)
}

// ApprovalQueue lists work orders awaiting a decision.
func (h *Handler) ApprovalQueue(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.WorkOrders.ListApprovalQueue(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetWorkOrder returns one work order.
func (h *Handler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	wo, err := h.svc.WorkOrders.GetWorkOrder(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wo)
}

// UpdateWorkOrder edits title and/or details.
func (h *Handler) UpdateWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req updateWorkOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	wo, err := h.svc.WorkOrders.UpdateWorkOrder(r.Context(), primary.UpdateWorkOrderRequest{
		ID:              id,
		Title:           req.Title,
		Details:         req.Details,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wo)
}

// AssignWorkOrder assigns a user.
func (h *Handler) AssignWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req assignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	wo, err := h.svc.WorkOrders.AssignWorkOrder(r.Context(), primary.AssignWorkOrderRequest{
		ID:              id,
		Assignee:        req.Assignee,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wo)
}

// TransitionWorkOrder applies complete, review, approve or reject.
func (h *Handler) TransitionWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req transitionRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}
	tr := primary.TransitionRequest{ID: id, ExpectedVersion: req.Version}

	var (
		wo  *primary.WorkOrder
		err error
	)
	switch chi.URLParam(r, "action") {
	case "complete":
		wo, err = h.svc.WorkOrders.CompleteWorkOrder(r.Context(), tr)
	case "review":
		wo, err = h.svc.WorkOrders.SubmitForReview(r.Context(), tr)
	case "approve":
		wo, err = h.svc.WorkOrders.ApproveWorkOrder(r.Context(), tr)
	case "reject":
		wo, err = h.svc.WorkOrders.RejectWorkOrder(r.Context(), tr)
	default:
		WriteError(w, http.StatusNotFound, CodeNotFound, "unknown action "+chi.URLParam(r, "action"))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wo)
}

// --- users ---

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ListUsers lists accounts, optionally by ?role=.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if role := r.URL.Query().Get("role"); role != "" {
		names, err := h.svc.Users.ListUsernamesByRole(r.Context(), role)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, names)
		return
	}

	users, err := h.svc.Users.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser creates an account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.svc.Users.CreateUser(r.Context(), primary.CreateUserRequest{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// DeleteUser removes an account.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Users.DeleteUser(r.Context(), chi.URLParam(r, "username")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- stock ---

type upsertItemRequest struct {
	Name   string `json:"name"`
	Qty    int    `json:"qty"`
	MinQty int    `json:"min_qty"`
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

// ListStock lists items, or only low ones with ?low=true.
func (h *Handler) ListStock(w http.ResponseWriter, r *http.Request) {
	var (
		items []*primary.StockItem
		err   error
	)
	if low, _ := strconv.ParseBool(r.URL.Query().Get("low")); low {
		items, err = h.svc.Inventory.LowStock(r.Context())
	} else {
		items, err = h.svc.Inventory.ListItems(r.Context())
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// UpsertStock inserts or replaces an item.
func (h *Handler) UpsertStock(w http.ResponseWriter, r *http.Request) {
	var req upsertItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := h.svc.Inventory.UpsertItem(r.Context(), primary.UpsertItemRequest{
		PartNo: chi.URLParam(r, "partNo"),
		Name:   req.Name,
		Qty:    req.Qty,
		MinQty: req.MinQty,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// AdjustStock changes an item quantity by delta.
func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := h.svc.Inventory.AdjustQty(r.Context(), chi.URLParam(r, "partNo"), req.Delta)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteStock removes an item.
func (h *Handler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Inventory.DeleteItem(r.Context(), chi.URLParam(r, "partNo")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- training ---

type addSessionRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type assignTrainingRequest struct {
	User string `json:"user"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// ListSessions lists training sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.Training.ListSessions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// AddSession creates a training session.
func (h *Handler) AddSession(w http.ResponseWriter, r *http.Request) {
	var req addSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	session, err := h.svc.Training.AddSession(r.Context(), req.Title, req.Date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// AssignTraining puts a user on a session. 201 when new, 200 when already assigned.
func (h *Handler) AssignTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req assignTrainingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.svc.Training.AssignUser(r.Context(), req.User, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp.Assignment)
}

// SetTrainingStatus updates an assignment status.
func (h *Handler) SetTrainingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req setStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user := chi.URLParam(r, "user")
	if err := h.svc.Training.SetAssignmentStatus(r.Context(), user, id, req.Status); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, primary.TrainingAssignment{User: user, SessionID: id, Status: req.Status})
}

// ListAssignments lists assignments, optionally for ?user=.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.svc.Training.ListAssignments(r.Context(), r.URL.Query().Get("user"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

// --- summary and audit ---

// Summary returns the dashboard counters.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary.Summary(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ListAudit returns audit entries newest first.
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 100
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			WriteError(w, http.StatusBadRequest, CodeValidationError, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.svc.Audit.List(r.Context(), primary.AuditFilters{
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
		Actor:      q.Get("actor"),
		Limit:      limit,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HealthLive reports that the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady reports whether the store answers. Without a checker the
// handler is always ready.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready.CheckReady(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "readiness check failed", slog.Any("error", err))
			WriteError(w, http.StatusServiceUnavailable, CodeUnavailable, "store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		WriteError(w, http.StatusBadRequest, CodeValidationError, "invalid "+name+" "+strconv.Quote(raw))
		return 0, false
	}
	return n, true
}
