package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartapp "github.com/ebookstore/backend/internal/application/cart"
	catalogapp "github.com/ebookstore/backend/internal/application/catalog"
	identityapp "github.com/ebookstore/backend/internal/application/identity"
	orderapp "github.com/ebookstore/backend/internal/application/order"
	reportapp "github.com/ebookstore/backend/internal/application/report"
	domaincart "github.com/ebookstore/backend/internal/domain/cart"
	"github.com/ebookstore/backend/internal/infrastructure/auth"
	"github.com/ebookstore/backend/internal/infrastructure/config"
	"github.com/ebookstore/backend/internal/infrastructure/logger"
	"github.com/ebookstore/backend/internal/infrastructure/persistence"
	"github.com/ebookstore/backend/internal/infrastructure/rendering"
	"github.com/ebookstore/backend/internal/infrastructure/session"
	"github.com/ebookstore/backend/internal/infrastructure/storage"
	"github.com/ebookstore/backend/internal/interfaces/http/handler"
	"github.com/ebookstore/backend/internal/interfaces/http/middleware"
	"github.com/ebookstore/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting bookstore backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	bookRepo := persistence.NewGormBookRepository(db.DB)
	feedbackRepo := persistence.NewGormFeedbackRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Cart store: Redis when configured, in-memory otherwise
	cartStore := buildCartStore(cfg, log)

	// Object storage for cover images
	objectStorage := buildObjectStorage(cfg, log)

	// Headless-browser PDF renderer
	renderer := rendering.NewChromedpRenderer(&cfg.Render, log)
	defer renderer.Close()

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	passwordHasher := auth.NewBcryptHasher()

	// Application services
	authService := identityapp.NewAuthService(userRepo, passwordHasher, jwtService, log)
	bookService := catalogapp.NewBookService(bookRepo, feedbackRepo, objectStorage, log)
	cartService := cartapp.NewService(cartStore, bookRepo, log)
	orderService := orderapp.NewService(txManager, orderRepo, userRepo, log)
	dashboardService := reportapp.NewDashboardService(orderRepo, userRepo, bookRepo, log)
	reportService, err := reportapp.NewReportService(dashboardService, orderService, bookRepo, userRepo, renderer, log)
	if err != nil {
		log.Fatal("Failed to initialize report service", zap.Error(err))
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService, cartService, log)
	reportHandler := handler.NewReportHandler(dashboardService, reportService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// CORS, body limit, cart session cookie
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.CartSession(cfg.Session))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Public routes: account registration, login, catalog browsing and
	// the session cart
	authRoutes := router.NewDomainGroup("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)

	bookRoutes := router.NewDomainGroup("/books")
	bookRoutes.GET("", bookHandler.List)
	bookRoutes.GET("/:id", bookHandler.Get)
	bookRoutes.POST("/:id/feedback", middleware.JWTAuth(jwtService), bookHandler.AddFeedback)

	cartRoutes := router.NewDomainGroup("/cart")
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:id", cartHandler.UpdateItem)
	cartRoutes.DELETE("/items/:id", cartHandler.RemoveItem)
	cartRoutes.DELETE("", cartHandler.Clear)

	// Authenticated customer routes
	profileRoutes := router.NewDomainGroup("/profile")
	profileRoutes.Use(middleware.JWTAuth(jwtService))
	profileRoutes.GET("", authHandler.Profile)
	profileRoutes.PUT("", authHandler.UpdateContact)

	orderRoutes := router.NewDomainGroup("/orders")
	orderRoutes.Use(middleware.JWTAuth(jwtService))
	orderRoutes.POST("", orderHandler.Checkout)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.POST("/:id/reorder", orderHandler.Reorder)

	// Admin routes: catalog management, order oversight, dashboard and
	// PDF reports
	adminRoutes := router.NewDomainGroup("/admin")
	adminRoutes.Use(middleware.JWTAuth(jwtService), middleware.RequireAdmin())
	adminRoutes.POST("/books", bookHandler.Create)
	adminRoutes.PUT("/books/:id", bookHandler.Update)
	adminRoutes.DELETE("/books/:id", bookHandler.Delete)
	adminRoutes.POST("/books/:id/cover", bookHandler.UploadCover)
	adminRoutes.GET("/orders", orderHandler.ListAll)
	adminRoutes.PUT("/orders/:id/status", orderHandler.ChangeStatus)
	adminRoutes.GET("/dashboard", reportHandler.Dashboard)
	adminRoutes.GET("/reports/delivered-orders", reportHandler.DeliveredOrders)
	adminRoutes.GET("/reports/delivered-orders/pdf", reportHandler.DeliveredOrdersPDF)
	adminRoutes.GET("/reports/orders/:id/invoice", reportHandler.OrderInvoicePDF)
	adminRoutes.GET("/reports/books/pdf", reportHandler.BookListPDF)
	adminRoutes.GET("/reports/customers/pdf", reportHandler.CustomerListPDF)

	r.Register(authRoutes).
		Register(bookRoutes).
		Register(cartRoutes).
		Register(profileRoutes).
		Register(orderRoutes).
		Register(adminRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

// buildCartStore connects to Redis for cart sessions. Outside production
// an unreachable Redis falls back to the in-memory store.
func buildCartStore(cfg *config.Config, log *zap.Logger) domaincart.Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if cfg.IsProduction() {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory cart store",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err))
		return session.NewMemoryStore(cfg.Session.IdleExpiry)
	}
	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	return session.NewRedisStore(client, cfg.Session.IdleExpiry)
}

// buildObjectStorage connects to the configured S3-compatible storage,
// or returns the no-op stub when no endpoint is configured
func buildObjectStorage(cfg *config.Config, log *zap.Logger) catalogapp.ObjectStorage {
	if cfg.Storage.Endpoint == "" && cfg.Storage.AccessKeyID == "" {
		log.Warn("Object storage not configured, cover uploads disabled")
		return storage.NewStubObjectStorage()
	}

	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		log.Fatal("Failed to ensure storage bucket", zap.Error(err))
	}
	log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))

	return s3Storage
}

// healthHandler reports service liveness including database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
