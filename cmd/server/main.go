package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/speedparts/storefront/internal/application/shop"
	"github.com/speedparts/storefront/internal/infrastructure/catalogsource"
	"github.com/speedparts/storefront/internal/infrastructure/config"
	"github.com/speedparts/storefront/internal/infrastructure/dispatch"
	"github.com/speedparts/storefront/internal/infrastructure/logger"
	"github.com/speedparts/storefront/internal/infrastructure/persistence"
	"github.com/speedparts/storefront/internal/interfaces/http/handler"
	"github.com/speedparts/storefront/internal/interfaces/http/middleware"
	"github.com/speedparts/storefront/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Speedparts Storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize cart storage
	db, err := persistence.NewDatabase(cfg.Storage.Path)
	if err != nil {
		log.Fatal("Failed to open cart storage", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing cart storage", zap.Error(err))
		}
	}()
	log.Info("Cart storage ready", zap.String("path", cfg.Storage.Path))

	cartRepo := persistence.NewGormCartRepository(db.DB, log)

	// Catalog source (HTTP URL or local file)
	loader := catalogsource.NewLoader(cfg.Catalog.Source, cfg.Catalog.FetchTimeout)

	// Dispatch pipeline; remote submission is optional
	var remote dispatch.Submitter
	if cfg.RemoteConfigured() {
		remote = dispatch.NewRemoteClient(cfg.Dispatch.RemoteEndpoint, cfg.Dispatch.Timeout)
		log.Info("Remote order submission enabled", zap.String("endpoint", cfg.Dispatch.RemoteEndpoint))
	} else {
		log.Info("No remote order endpoint configured, orders fall back to mail links")
	}
	pipeline := dispatch.NewPipeline(cfg.Seller.Phone, cfg.Seller.Currency, remote, log)

	// Build the shop session and load the catalog. A failed catalog load
	// starts the shop empty rather than refusing to start.
	session := shop.NewSession(loader, cartRepo, pipeline, cfg.Storage.SlotKey, log)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout+5*time.Second)
	defer cancelStartup()
	if err := session.Start(startupCtx); err != nil {
		log.Fatal("Failed to start shop session", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Middleware stack in order: request ID, panic recovery, request
	// logging, security headers, CORS
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewCatalogHandler(session)).
		Register(handler.NewCartHandler(session)).
		Register(handler.NewCheckoutHandler(session, cfg.Seller.Phone)).
		Register(handler.NewSystemHandler())
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"time":    time.Now().Format(time.RFC3339),
				"storage": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"storage": "ok",
		})
	}
}
