package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/talentfuze/portal/internal/agencies"
	"github.com/talentfuze/portal/internal/app"
	"github.com/talentfuze/portal/internal/auth"
	"github.com/talentfuze/portal/internal/checkins"
	"github.com/talentfuze/portal/internal/gate"
	"github.com/talentfuze/portal/internal/nav"
	"github.com/talentfuze/portal/internal/observability"
	"github.com/talentfuze/portal/internal/platform/cache"
	"github.com/talentfuze/portal/internal/platform/db"
	"github.com/talentfuze/portal/internal/rbac"
	"github.com/talentfuze/portal/internal/requests"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
	"github.com/talentfuze/portal/internal/vas"
	"github.com/talentfuze/portal/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var pool *pgxpool.Pool
	if !cfg.UseMemoryBackend() {
		pool, err = db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := session.NewManager(redisClient, "portal_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := session.NewCSRFManager(cfg.CSRFSecret)

	auditLogger := shared.NewAuditLogger(pool)
	metrics := observability.NewMetrics()
	gateMW := gate.Middleware{Logger: logger, Metrics: metrics}

	var (
		rbacRepo    rbac.Repository
		agencyRepo  agencies.Repository
		vaRepo      vas.Repository
		checkInRepo checkins.Repository
		requestRepo requests.Repository
	)
	if cfg.UseMemoryBackend() {
		roles, users, err := rbac.DemoSeed(cfg.DemoPassword)
		if err != nil {
			logger.Error("seed demo data", slog.Any("error", err))
			os.Exit(1)
		}
		rbacRepo = rbac.NewMemoryRepository(roles, users)
		agencyRepo = agencies.NewMemoryRepository(agencies.DemoRows())
		vaRepo = vas.NewMemoryRepository(vas.DemoRows())
		checkInRepo = checkins.NewMemoryRepository(checkins.DemoRows())
		requestRepo = requests.NewMemoryRepository(requests.DemoRows())
		logger.Info("memory backend active, demo accounts seeded")
	} else {
		rbacRepo = rbac.NewPGRepository(pool)
		agencyRepo = agencies.NewPGRepository(pool)
		vaRepo = vas.NewPGRepository(pool)
		checkInRepo = checkins.NewPGRepository(pool)
		requestRepo = requests.NewPGRepository(pool)
	}

	authService := auth.NewService(rbacRepo, auditLogger, logger)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager, metrics)

	rbacService := rbac.NewService(rbacRepo, auditLogger, logger)
	rbacHandler := rbac.NewHandler(logger, rbacService, gateMW)

	navHandler := nav.NewHandler(gateMW)

	agenciesHandler := agencies.NewHandler(logger, agencies.NewService(agencyRepo, auditLogger, logger), gateMW)
	vasHandler := vas.NewHandler(logger, vas.NewService(vaRepo, auditLogger, logger), gateMW)
	checkInsHandler := checkins.NewHandler(logger, checkins.NewService(checkInRepo, auditLogger, logger), gateMW)
	requestsHandler := requests.NewHandler(logger, requests.NewService(requestRepo, auditLogger, logger), gateMW)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		SessionManager:  sessionManager,
		CSRFManager:     csrfManager,
		AuthHandler:     authHandler,
		RBACHandler:     rbacHandler,
		NavHandler:      navHandler,
		AgenciesHandler: agenciesHandler,
		VAsHandler:      vasHandler,
		CheckInsHandler: checkInsHandler,
		RequestsHandler: requestsHandler,
		JobsHandler:     jobsHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server", slog.Any("error", err))
		os.Exit(1)
	}
}
