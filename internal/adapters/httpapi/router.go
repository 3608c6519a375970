package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Services Services
	Tokens   *TokenIssuer
	Logger   *slog.Logger
	// Registry receives the HTTP collectors and backs GET /metrics.
	Registry *prometheus.Registry
	// Ready backs GET /health/ready; nil means always ready.
	Ready ReadinessChecker
}

// NewRouter builds the API routes.
func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := NewHandler(opts.Services, opts.Tokens, logger)
	h.ready = opts.Ready

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	if opts.Registry != nil {
		r.Use(NewMetrics(opts.Registry).Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(opts.Tokens))

			r.Get("/me", h.Me)
			r.Post("/session/context", h.SetContext)

			r.Get("/airbases", h.ListAirbases)
			r.Get("/airbases/{baseID}/aircraft", h.ListAircraft)
			r.Get("/aircraft/{tail}", h.GetAircraft)

			r.Route("/work-orders", func(r chi.Router) {
				r.Get("/", h.ListWorkOrders)
				r.Post("/", h.CreateWorkOrder)
				r.Get("/queue", h.ApprovalQueue)
				r.Get("/{id}", h.GetWorkOrder)
				r.Patch("/{id}", h.UpdateWorkOrder)
				r.Post("/{id}/assign", h.AssignWorkOrder)
				r.Post("/{id}/{action}", h.TransitionWorkOrder)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.ListUsers)
				r.Post("/", h.CreateUser)
				r.Delete("/{username}", h.DeleteUser)
			})

			r.Route("/stock", func(r chi.Router) {
				r.Get("/", h.ListStock)
				r.Put("/{partNo}", h.UpsertStock)
				r.Post("/{partNo}/adjust", h.AdjustStock)
				r.Delete("/{partNo}", h.DeleteStock)
			})

			r.Route("/training", func(r chi.Router) {
				r.Get("/sessions", h.ListSessions)
				r.Post("/sessions", h.AddSession)
				r.Post("/sessions/{id}/assignments", h.AssignTraining)
				r.Put("/sessions/{id}/assignments/{user}", h.SetTrainingStatus)
				r.Get("/assignments", h.ListAssignments)
			})

			r.Get("/summary", h.Summary)
			r.Get("/audit", h.ListAudit)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, CodeNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, CodeNotFound, "method "+r.Method+" not allowed")
	})

	return r
}
