package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mirastore/catalog_api/internal/cache"
	"github.com/mirastore/catalog_api/internal/config"
	"github.com/mirastore/catalog_api/internal/database"
	"github.com/mirastore/catalog_api/internal/handler"
	"github.com/mirastore/catalog_api/internal/localstore"
	"github.com/mirastore/catalog_api/internal/middleware"
	"github.com/mirastore/catalog_api/internal/repository"
	"github.com/mirastore/catalog_api/internal/service"
	"github.com/mirastore/catalog_api/internal/sse"
	"github.com/mirastore/catalog_api/internal/store"
	"github.com/mirastore/catalog_api/internal/worker"
	"github.com/mirastore/catalog_api/pkg/catalogapi"
)

// main is the application entrypoint for the Mirastore catalog API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("store_mode", cfg.StoreMode).Msg("starting catalog api")

	// 3. Connect the catalog store (Postgres or local file store)
	var db *sqlx.DB
	var pgStore *store.PostgresStore
	var catalogStore store.CatalogStore

	switch cfg.StoreMode {
	case config.StorePostgres:
		db, err = database.Connect(&cfg.DB)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := runMigrations(db.DB); err != nil {
			log.Error().Err(err).Msg("migration failed")
			fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
			os.Exit(1)
		}
		log.Info().Msg("migrations completed successfully")

		pgStore = store.NewPostgresStore(db)
		catalogStore = pgStore
	case config.StoreLocal:
		local, err := localstore.New(cfg.Local.DataDir, cfg.Local.QuotaBytes)
		if err != nil {
			log.Error().Err(err).Msg("local store initialization failed")
			fmt.Fprintf(os.Stderr, "local store initialization failed: %v\n", err)
			os.Exit(1)
		}
		catalogStore = store.NewLocalStore(local)
		log.Info().Str("dir", cfg.Local.DataDir).Int64("quota_bytes", cfg.Local.QuotaBytes).Msg("local store ready")
	}

	// 3a. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3b. Initialize caches
	productCache := cache.NewProductCache(redisClient)
	pendingDeletes := cache.NewPendingDeleteCache(redisClient)

	// 4. Initialize upstream catalog clients. The storefront client may
	// degrade to mock data; the sync/health client must see real failures
	// so outages are never persisted or masked.
	upstream := catalogapi.NewClient(catalogapi.Config{
		BaseURL:      cfg.Upstream.BaseURL,
		Token:        cfg.Upstream.Token,
		Timeout:      cfg.Upstream.Timeout,
		MockFallback: cfg.Upstream.MockFallback,
	})
	syncUpstream := catalogapi.NewSyncClient(catalogapi.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Token:   cfg.Upstream.Token,
	})

	// 5. Initialize SSE hub and notifier
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 6. Initialize services
	productSvc := service.NewProductService(catalogStore, productCache, pendingDeletes, notifier)
	categorySvc := service.NewCategoryService(catalogStore, productCache, pendingDeletes, notifier)
	storefrontSvc := service.NewStorefrontService(catalogStore, upstream, productCache)

	var adminAuthSvc *service.AdminAuthService
	if db != nil {
		adminRepo := repository.NewAdminUserRepository(db)
		adminAuthSvc = service.NewAdminAuthService(adminRepo)
	}

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:     handler.NewHealthHandler(db, syncUpstream),
		Storefront: handler.NewStorefrontHandler(storefrontSvc),
		Product:    handler.NewProductHandler(productSvc),
		Category:   handler.NewCategoryHandler(categorySvc),
		Image:      handler.NewImageHandler(),
		SSE:        handler.NewSSEHandler(hub),
		Webhook:    handler.NewWebhookHandler(productCache, notifier, cfg.Upstream.WebhookSecret),
	}
	if adminAuthSvc != nil {
		handlers.Auth = handler.NewAuthHandler(adminAuthSvc, middleware.NewInvalidAuthRateLimiter())
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw, routeOptions{
		requireAuth:    cfg.StoreMode == config.StorePostgres,
		webhookEnabled: cfg.Upstream.WebhookSecret != "",
	})

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start catalog sync worker (Postgres mode only)
	if pgStore != nil && syncUpstream.Available() {
		go worker.NewSyncWorker(syncUpstream, pgStore, productCache, cfg.Worker.SyncInterval).Start(ctx)
	}

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers for route registration.
type Handlers struct {
	Health     *handler.HealthHandler
	Storefront *handler.StorefrontHandler
	Product    *handler.ProductHandler
	Category   *handler.CategoryHandler
	Image      *handler.ImageHandler
	Auth       *handler.AuthHandler
	SSE        *handler.SSEHandler
	Webhook    *handler.WebhookHandler
}

// routeOptions control conditional route registration. requireAuth guards
// the admin group with JWT; it is off in local store mode, which has no
// admin user table. The webhook needs a shared secret to verify signatures.
type routeOptions struct {
	requireAuth    bool
	webhookEnabled bool
}

// setupRoutes registers all API routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware, opts routeOptions) {
	// Health check (public)
	router.GET("/health", handlers.Health.GetHealth)

	// Upstream change notifications (signature-verified)
	if opts.webhookEnabled {
		router.POST("/webhook/catalog", handlers.Webhook.HandleCatalogCallback)
	}

	// Storefront routes (public product display)
	storefront := router.Group("/v1/storefront")
	{
		storefront.GET("/products", handlers.Storefront.ListProducts)
		storefront.GET("/products/:id", handlers.Storefront.GetProduct)
		storefront.GET("/categories", handlers.Storefront.ListCategories)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	if opts.requireAuth {
		admin.POST("/auth/login", handlers.Auth.Login)
		// SSE authenticates via token query param (EventSource cannot set headers)
		admin.GET("/events", handlers.SSE.Stream)
		admin.Use(jwtMiddleware.Handle())
	} else {
		admin.GET("/events", handlers.SSE.StreamUnauthenticated)
	}
	{
		// Product management
		admin.GET("/products", handlers.Product.ListProducts)
		admin.POST("/products", handlers.Product.CreateProduct)
		admin.GET("/products/:id", handlers.Product.GetProduct)
		admin.PUT("/products/:id", handlers.Product.UpdateProduct)
		admin.DELETE("/products/:id", handlers.Product.DeleteProduct)

		// Category management
		admin.GET("/categories", handlers.Category.ListCategories)
		admin.POST("/categories", handlers.Category.CreateCategory)
		admin.GET("/categories/:id", handlers.Category.GetCategory)
		admin.PUT("/categories/:id", handlers.Category.UpdateCategory)
		admin.DELETE("/categories/:id", handlers.Category.DeleteCategory)

		// Image ingestion
		admin.POST("/images", handlers.Image.UploadImage)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
