package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/codepulse/internal/api/http"
	"github.com/spec-kit/codepulse/internal/api/http/handlers"
	"github.com/spec-kit/codepulse/internal/auth"
	"github.com/spec-kit/codepulse/internal/cache"
	"github.com/spec-kit/codepulse/internal/config"
	"github.com/spec-kit/codepulse/internal/events"
	"github.com/spec-kit/codepulse/internal/observability"
	"github.com/spec-kit/codepulse/internal/persistence"
	"github.com/spec-kit/codepulse/internal/repository"
	"github.com/spec-kit/codepulse/internal/service"
	"github.com/spec-kit/codepulse/internal/storage"
	"github.com/spec-kit/codepulse/internal/worker"
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

	blobStore, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	postRepo := repository.NewBlogPostRepository(pool)
	imageRepo := repository.NewImageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	postCache := cache.NewPostCache(redis.Client, cfg.Redis.CacheTTL, logger)
	worker.StartCacheWorker(dispatcher, postCache, logger)

	authService := service.NewAuthService(cfg.Auth, userRepo, logger)
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to seed admin account", zap.Error(err))
	}
	categoryService := service.NewCategoryService(categoryRepo, dispatcher, logger)
	postService := service.NewBlogPostService(postRepo, categoryRepo, postCache, dispatcher, logger)
	imageService := service.NewImageService(imageRepo, blobStore, dispatcher, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{BodyLimit: 12 * 1024 * 1024})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		BlogPosts:      handlers.NewBlogPostsHandler(postService),
		Images:         handlers.NewImagesHandler(imageService),
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
