// Package wire provides dependency injection for the esys application.
// It creates singleton services with lazy initialization from the loaded config.
package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	cliadapter "github.com/example/esys/internal/adapters/cli"
	"github.com/example/esys/internal/adapters/httpapi"
	"github.com/example/esys/internal/adapters/jsonfile"
	"github.com/example/esys/internal/adapters/metrics"
	"github.com/example/esys/internal/adapters/persistence"
	"github.com/example/esys/internal/adapters/postgres"
	"github.com/example/esys/internal/adapters/sqlite"
	"github.com/example/esys/internal/app"
	"github.com/example/esys/internal/config"
	"github.com/example/esys/internal/db"
	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/ports/secondary"
)

const connectTimeout = 10 * time.Second

// Services holds the primary ports built from one store.
type Services struct {
	WorkOrders primary.WorkOrderService
	Fleet      primary.FleetService
	Users      primary.UserService
	Inventory  primary.InventoryService
	Training   primary.TrainingService
	Summary    primary.SummaryService
	Audit      primary.AuditService

	Store    secondary.CollectionStore
	Registry *prometheus.Registry
}

var (
	cfg    *config.Config
	logger *slog.Logger

	services *Services
	initErr  error
	closers  []func()
	once     sync.Once
)

// Configure sets the config and logger used by the lazily built services.
// It must be called before any accessor.
func Configure(c *config.Config, l *slog.Logger) {
	cfg = c
	logger = l
}

// Config returns the configured config.
func Config() *config.Config {
	return cfg
}

// All returns the singleton Services, building them on first use.
func All() (*Services, error) {
	once.Do(initServices)
	return services, initErr
}

// Close releases the store connections opened by All.
func Close() {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	closers = nil
}

// initServices opens the configured store and builds every service on it.
// This is called once via sync.Once.
func initServices() {
	if cfg == nil {
		initErr = fmt.Errorf("wire: Configure was not called")
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	store, err := openStore(cfg.Store, cfg.DataDir)
	if err != nil {
		initErr = err
		return
	}
	services = Build(store, logger)
}

// Build wires repositories and services over store. Each call gets its own registry.
func Build(store secondary.CollectionStore, logger *slog.Logger) *Services {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Create repository adapters (secondary ports) over the injected store
	taskRepo := persistence.NewTaskRepository(store)
	userRepo := persistence.NewUserRepository(store)
	fleetRepo := persistence.NewFleetRepository(store)
	stockRepo := persistence.NewStockRepository(store)
	trainingRepo := persistence.NewTrainingRepository(store)
	auditRepo := persistence.NewAuditRepository(store)
	logWriter := metrics.NewLogWriter(persistence.NewLogWriterAdapter(auditRepo), registry)

	// Create services (primary ports implementation)
	return &Services{
		WorkOrders: app.NewWorkOrderService(taskRepo, userRepo, fleetRepo, logWriter, logger),
		Fleet:      app.NewFleetService(fleetRepo),
		Users:      app.NewUserService(userRepo, logWriter, logger),
		Inventory:  app.NewInventoryService(stockRepo, logWriter, logger),
		Training:   app.NewTrainingService(trainingRepo, logWriter, logger),
		Summary:    app.NewSummaryService(taskRepo, stockRepo, trainingRepo),
		Audit:      app.NewAuditService(auditRepo),
		Store:      store,
		Registry:   registry,
	}
}

func openStore(sc config.StoreConfig, dataDir string) (secondary.CollectionStore, error) {
	switch sc.Driver {
	case config.DriverJSON:
		store, err := jsonfile.New(dataDir, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open json store: %w", err)
		}
		return store, nil

	case config.DriverSQLite:
		path := sc.DSN
		if path == "" {
			path = db.DefaultPath(dataDir)
		}
		database, err := db.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		closers = append(closers, func() { database.Close() })
		return sqlite.NewCollectionStore(database, logger), nil

	case config.DriverPostgres:
		if err := postgres.Migrate(sc.DSN, logger); err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		pool, err := postgres.Connect(ctx, sc.DSN, logger)
		if err != nil {
			return nil, err
		}
		closers = append(closers, pool.Close)
		return postgres.NewCollectionStore(pool, logger), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", sc.Driver)
	}
}

// HTTPServer builds the API server from the configured services.
func HTTPServer() (*httpapi.Server, error) {
	svc, err := All()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireTokenSecret(); err != nil {
		return nil, err
	}

	opts := httpapi.RouterOptions{
		Services: httpapi.Services{
			WorkOrders: svc.WorkOrders,
			Fleet:      svc.Fleet,
			Users:      svc.Users,
			Inventory:  svc.Inventory,
			Training:   svc.Training,
			Summary:    svc.Summary,
			Audit:      svc.Audit,
		},
		Tokens:   httpapi.NewTokenIssuer(cfg.Token.Secret, cfg.Token.TTL.Std()),
		Logger:   logger,
		Registry: svc.Registry,
	}
	if rc, ok := svc.Store.(httpapi.ReadinessChecker); ok {
		opts.Ready = rc
	}
	handler := httpapi.NewRouter(opts)

	return httpapi.NewServer(httpapi.ServerConfig{
		Addr:            cfg.HTTP.Addr,
		ReadTimeout:     cfg.HTTP.ReadTimeout.Std(),
		WriteTimeout:    cfg.HTTP.WriteTimeout.Std(),
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout.Std(),
	}, handler, logger), nil
}

// WorkOrderAdapter returns a new WorkOrderAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func WorkOrderAdapter() (*cliadapter.WorkOrderAdapter, error) {
	return WorkOrderAdapterWithOutput(os.Stdout)
}

// WorkOrderAdapterWithOutput returns a new WorkOrderAdapter writing to the given output.
func WorkOrderAdapterWithOutput(out io.Writer) (*cliadapter.WorkOrderAdapter, error) {
	svc, err := All()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewWorkOrderAdapter(svc.WorkOrders, out), nil
}

// FleetAdapter returns a new FleetAdapter writing to out.
func FleetAdapter(out io.Writer) (*cliadapter.FleetAdapter, error) {
	svc, err := All()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewFleetAdapter(svc.Fleet, out), nil
}

// UserAdapter returns a new UserAdapter writing to out.
func UserAdapter(out io.Writer) (*cliadapter.UserAdapter, error) {
	svc, err := All()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewUserAdapter(svc.Users, out), nil
}

// InventoryAdapter returns a new InventoryAdapter writing to out.
func InventoryAdapter(out io.Writer) (*cliadapter.InventoryAdapter, error) {
	svc, err := All()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewInventoryAdapter(svc.Inventory, out), nil
}

// TrainingAdapter returns a new TrainingAdapter writing to out.
func TrainingAdapter(out io.Writer) (*cliadapter.TrainingAdapter, error) {
	svc, err := All()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewTrainingAdapter(svc.Training, out), nil
}

// SummaryAdapter returns a new SummaryAdapter writing to out.
func SummaryAdapter(out io.Writer) (*cliadapter.SummaryAdapter, error) {
	svc, err := All()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewSummaryAdapter(svc.Summary, svc.Audit, out), nil
}
