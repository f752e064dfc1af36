package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ledgerapp "github.com/caixa/backend/internal/application/ledger"
	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/infrastructure/cache"
	"github.com/caixa/backend/internal/infrastructure/config"
	"github.com/caixa/backend/internal/infrastructure/logger"
	"github.com/caixa/backend/internal/infrastructure/persistence"
	"github.com/caixa/backend/internal/interfaces/http/handler"
	"github.com/caixa/backend/internal/interfaces/http/middleware"
	"github.com/caixa/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ledger backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	debtRepo := persistence.NewGormDebtRepository(db.DB)
	checkRepo := persistence.NewGormCheckRepository(db.DB)
	boletoRepo := persistence.NewGormBoletoRepository(db.DB)
	employeePaymentRepo := persistence.NewGormEmployeePaymentRepository(db.DB)
	pixFeeRepo := persistence.NewGormPixFeeRepository(db.DB)
	cashRepo := persistence.NewGormCashRepository(db.DB)
	snapshotRepo := persistence.NewGormSnapshotRepository(db.DB)

	// Summary cache (memory or Redis per configuration)
	cacheFactory := cache.NewSummaryCacheFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log))
	summaryCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create summary cache", zap.Error(err))
	}
	defer func() {
		if err := summaryCache.Close(); err != nil {
			log.Error("Error closing summary cache", zap.Error(err))
		}
	}()

	fallback := ledger.FallbackMethodAmount
	if cfg.Ledger.InstallmentAmountFallback == "zero" {
		fallback = ledger.FallbackZero
	}

	// Initialize application services
	projectionService := ledgerapp.NewProjectionService(
		snapshotRepo,
		cashRepo,
		ledgerapp.WithSummaryCache(summaryCache),
		ledgerapp.WithLogger(log),
		ledgerapp.WithAmountFallback(fallback),
	)
	cashService := ledgerapp.NewCashService(cashRepo)
	saleService := ledgerapp.NewSaleService(saleRepo)
	debtService := ledgerapp.NewDebtService(debtRepo)
	checkService := ledgerapp.NewCheckService(checkRepo, cashService)
	boletoService := ledgerapp.NewBoletoService(boletoRepo, cashService)
	expenseService := ledgerapp.NewExpenseService(employeePaymentRepo, pixFeeRepo)

	// Initialize handlers
	saleHandler := handler.NewSaleHandler(saleService)
	debtHandler := handler.NewDebtHandler(debtService)
	checkHandler := handler.NewCheckHandler(checkService)
	boletoHandler := handler.NewBoletoHandler(boletoService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	cashHandler := handler.NewCashHandler(cashService, projectionService)
	reportHandler := handler.NewReportHandler(projectionService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check
	engine.GET("/health", healthHandler(db, log))

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(saleHandler).
		Register(debtHandler).
		Register(checkHandler).
		Register(boletoHandler).
		Register(expenseHandler).
		Register(cashHandler).
		Register(reportHandler)
	r.Setup()

	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
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
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
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
