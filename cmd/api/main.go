package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/studiosadmin/admin-console/internal/api/http"
	"github.com/studiosadmin/admin-console/internal/api/http/handlers"
	"github.com/studiosadmin/admin-console/internal/auth"
	"github.com/studiosadmin/admin-console/internal/config"
	"github.com/studiosadmin/admin-console/internal/events"
	"github.com/studiosadmin/admin-console/internal/observability"
	"github.com/studiosadmin/admin-console/internal/persistence"
	"github.com/studiosadmin/admin-console/internal/repository"
	"github.com/studiosadmin/admin-console/internal/repository/memstore"
	"github.com/studiosadmin/admin-console/internal/repository/mongostore"
	"github.com/studiosadmin/admin-console/internal/repository/pgstore"
	"github.com/studiosadmin/admin-console/internal/repository/redisstore"
	"github.com/studiosadmin/admin-console/internal/service"
	"github.com/studiosadmin/admin-console/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.close()

	redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		if cfg.Store.Usage == config.UsageRedis {
			logger.Fatal("redis is required for usage counters", zap.Error(err))
		}
		logger.Warn("redis unreachable", zap.Error(err))
	}
	defer redis.Close()

	repos := store.repos
	if cfg.Store.Usage == config.UsageRedis {
		repos.Usage = redisstore.NewUsageRepository(redis.Client)
		logger.Info("usage counters kept in redis")
	}

	if len(cfg.Auth.AdminUsers) == 0 {
		logger.Warn("AUTH_ADMIN_USERS is empty; admin login is disabled")
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes)
	authService := service.NewAuthService(cfg.Auth, tokens, logger)
	memberService := service.NewMemberService(service.MemberDependencies{
		MemberRepo: repos.Members,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	bugReportService := service.NewBugReportService(service.BugReportDependencies{
		BugReportRepo: repos.BugReports,
		CounterRepo:   repos.Counters,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	systemService := service.NewSystemService(repos.SystemStates, dispatcher, logger)
	metricsService := service.NewMetricsService(service.MetricsDependencies{
		StatsRepo:     repos.Stats,
		UsageRepo:     repos.Usage,
		MemberRepo:    repos.Members,
		BugReportRepo: repos.BugReports,
		TotalMB:       cfg.Storage.TotalMB,
		AlertPercent:  cfg.Storage.AlertPercent,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})

	monitor, err := worker.NewStorageMonitor(cfg.Storage.MonitorSchedule, metricsService, logger)
	if err != nil {
		logger.Fatal("failed to schedule storage monitor", zap.Error(err))
	}
	monitor.Start(ctx)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:           logger,
		Metrics:          metrics,
		Timeout:          cfg.App.RequestTimeout(),
		CORSAllowOrigins: cfg.App.CORSAllowOrigins,
		Sessions:         auth.NewSessionMiddleware(tokens),
	})

	deps := []handlers.Dependency{{Name: cfg.Store.Driver, Pinger: store.pinger}}
	if redis != nil {
		deps = append(deps, handlers.Dependency{Name: "redis", Pinger: redis})
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, deps...),
		Auth:               handlers.NewAuthHandler(authService, cfg.App.IsProduction()),
		Members:            handlers.NewMembersHandler(memberService),
		BugReports:         handlers.NewBugReportsHandler(bugReportService),
		System:             handlers.NewSystemHandler(systemService, logger),
		Metrics:            handlers.NewMetricsHandler(metricsService, logger),
		ProtectAdminRoutes: cfg.Auth.ProtectAdminRoutes,
		StaticDir:          cfg.App.StaticDir,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	monitor.Stop()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

// openedStore is the primary store selected by STORE_DRIVER.
type openedStore struct {
	repos  repository.Repositories
	pinger handlers.Pinger
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*openedStore, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		mg, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, mg.Database); err != nil {
			_ = mg.Close(context.Background())
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return &openedStore{
			repos:  mongostore.New(mg.Database),
			pinger: mg,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = mg.Close(closeCtx)
			},
		}, nil

	case config.StorePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		return &openedStore{repos: pgstore.New(pg.Pool), pinger: pg, close: pg.Close}, nil

	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		mem := memstore.New()
		return &openedStore{repos: mem.Repositories(), pinger: mem, close: func() {}}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
