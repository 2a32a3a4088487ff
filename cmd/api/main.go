package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/enpl/fieldops-console/internal/api/http"
	"github.com/enpl/fieldops-console/internal/api/http/handlers"
	"github.com/enpl/fieldops-console/internal/auth"
	"github.com/enpl/fieldops-console/internal/config"
	"github.com/enpl/fieldops-console/internal/events"
	"github.com/enpl/fieldops-console/internal/observability"
	"github.com/enpl/fieldops-console/internal/persistence"
	"github.com/enpl/fieldops-console/internal/repository"
	"github.com/enpl/fieldops-console/internal/service"
	"github.com/enpl/fieldops-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	siteRepo := repository.NewSiteRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	deviceRepo := repository.NewDeviceRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	sequenceRepo := repository.NewSequenceRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	scopeCache := service.NewRedisScopeCache(redis.Client, cfg.Auth.ScopeCacheTTL(), logger)

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	userService := service.NewUserService(*cfg, userRepo, scopeCache, dispatcher)
	customerService := service.NewCustomerService(customerRepo)
	siteService := service.NewSiteService(service.SiteDependencies{
		SiteRepo:     siteRepo,
		TaskRepo:     taskRepo,
		CustomerRepo: customerRepo,
		Dispatcher:   dispatcher,
	})
	catalogService := service.NewCatalogService(serviceRepo, sequenceRepo)
	deviceService := service.NewDeviceService(deviceRepo, sequenceRepo)
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:     taskRepo,
		CustomerRepo: customerRepo,
		SiteRepo:     siteRepo,
		ServiceRepo:  serviceRepo,
		Dispatcher:   dispatcher,
	})

	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, authService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Sites:          handlers.NewSitesHandler(siteService),
		Services:       handlers.NewServicesHandler(catalogService),
		Devices:        handlers.NewDevicesHandler(deviceService),
		Tasks:          handlers.NewTasksHandler(taskService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
