package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"pms/internal/domain/audit"
	"pms/internal/domain/auth"
	"pms/internal/domain/directory"
	"pms/internal/domain/notifications"
	"pms/internal/domain/performance"
	"pms/internal/domain/reports"
	"pms/internal/platform/config"
	"pms/internal/platform/db"
	"pms/internal/platform/email"
	"pms/internal/platform/jobs"
	"pms/internal/platform/metrics"
	audithandler "pms/internal/transport/http/handlers/audit"
	authhandler "pms/internal/transport/http/handlers/auth"
	notificationshandler "pms/internal/transport/http/handlers/notifications"
	performancehandler "pms/internal/transport/http/handlers/performance"
	reportshandler "pms/internal/transport/http/handlers/reports"
	"pms/internal/transport/http/middleware"
)

// Database is what the router needs from the connection pool.
type Database interface {
	db.Pool
	Ping(ctx context.Context) error
}

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
	Jobs    *jobs.Service
	Logger  *slog.Logger
}

// New prepares the database (migrations and seed when enabled) and builds
// the router. The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bands, err := config.LoadRatingBands(cfg.RatingBandsFile)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(db.MigrateUp, cfg.MigrationsDir, cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunSeed {
		dir, err := db.LoadSeedDirectory(cfg.SeedDirectoryFile)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if err := db.Seed(ctx, pool, dir); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("directory seeded", "users", len(dir.Users))
	}

	collector := metrics.New()
	queue := jobs.New(256, logger)
	return &App{
		Config:  cfg,
		DB:      pool,
		Router:  NewRouter(cfg, pool, bands, collector, queue, logger),
		Metrics: collector,
		Jobs:    queue,
		Logger:  logger,
	}, nil
}

// NewRouter wires every store, service and handler on top of database. A
// nil queue makes notification mail synchronous.
func NewRouter(cfg config.Config, database Database, bands performance.RatingBands, collector *metrics.Collector, queue *jobs.Service, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	directorySvc := directory.NewService(directory.NewStore(database))
	sessions := auth.NewService(directorySvc, cfg.JWTSecret, cfg.TokenTTL)
	auditSvc := audit.New(database)
	reportsSvc := reports.NewService(reports.NewStore(database))

	notifySvc := notifications.New(notifications.NewStore(database), email.New(cfg))
	notifySvc.DefaultFrom = cfg.EmailFrom
	notifySvc.EmailEnabled = cfg.EmailEnabled
	if queue != nil {
		notifySvc.Dispatcher = queue
	}

	engine := performance.NewEngine(performance.DefaultPolicy(), bands)
	performanceSvc := performance.NewService(performance.NewStore(database), engine)
	performanceSvc.SetLogger(logger)
	performanceSvc.Subscribe(auditSvc)
	performanceSvc.Subscribe(notifications.NewNotifier(notifySvc, directorySvc))

	var recorder middleware.RequestRecorder
	if collector != nil {
		performanceSvc.SetRecorder(collector)
		if cfg.MetricsEnabled {
			recorder = collector
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.Metrics(recorder))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil && cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

		authHandler := authhandler.NewHandler(sessions, directorySvc)
		authHandler.SessionLimit = middleware.SessionRateLimit(cfg.RateLimitPerMinute, time.Minute)
		authHandler.RegisterRoutes(r)

		performancehandler.NewHandler(performanceSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	return router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	if a.Jobs != nil {
		workerCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
		a.Jobs.Start(workerCtx, 2)
		defer func() {
			stopWorkers()
			a.Jobs.Wait()
		}()
	}

	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("pms server listening", "addr", a.Config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func Run() {
	if _, err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env failed: %v", err)
	}
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	if err := app.Serve(ctx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
