package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pricingapp "github.com/aurum/backoffice/internal/application/pricing"
	procurementapp "github.com/aurum/backoffice/internal/application/procurement"
	salesapp "github.com/aurum/backoffice/internal/application/sales"
	"github.com/aurum/backoffice/internal/infrastructure/cache"
	"github.com/aurum/backoffice/internal/infrastructure/config"
	"github.com/aurum/backoffice/internal/infrastructure/logger"
	"github.com/aurum/backoffice/internal/infrastructure/persistence"
	"github.com/aurum/backoffice/internal/interfaces/http/handler"
	"github.com/aurum/backoffice/internal/interfaces/http/middleware"
	"github.com/aurum/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
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
	log.Info("Database connected successfully")

	// Idempotency store (Redis when configured, in-memory otherwise)
	idempotencyStore, err := cache.NewIdempotencyStore(cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Repositories
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	receiptRepo := persistence.NewGormGoodsReceiptRepository(db.DB)
	balanceRepo := persistence.NewGormOrderLineBalanceRepository(db.DB)
	purchaseReturnRepo := persistence.NewGormPurchaseReturnRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	salesReturnRepo := persistence.NewGormSalesReturnRepository(db.DB)
	chargeRepo := persistence.NewGormMakingChargeRepository(db.DB)

	// Application services
	orderService := procurementapp.NewPurchaseOrderService(orderRepo)
	receiptService := procurementapp.NewGoodsReceiptService(receiptRepo, orderRepo, balanceRepo)
	purchaseReturnService := procurementapp.NewPurchaseReturnService(purchaseReturnRepo, orderRepo, balanceRepo)
	saleService := salesapp.NewSaleService(saleRepo)
	salesReturnService := salesapp.NewSalesReturnService(salesReturnRepo, saleRepo)
	chargeService := pricingapp.NewMakingChargeService(chargeRepo)

	// HTTP handlers
	orderHandler := handler.NewPurchaseOrderHandler(orderService)
	receiptHandler := handler.NewGoodsReceiptHandler(receiptService)
	purchaseReturnHandler := handler.NewPurchaseReturnHandler(purchaseReturnService)
	saleHandler := handler.NewSaleHandler(saleService)
	salesReturnHandler := handler.NewSalesReturnHandler(salesReturnService)
	chargeHandler := handler.NewMakingChargeHandler(chargeService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack in order: request ID first so everything after it
	// can correlate, then panic recovery, request logging, CORS, body
	// limit and idempotency.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORS(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Idempotency(idempotencyStore, log))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(orderHandler).
		Register(receiptHandler).
		Register(purchaseReturnHandler).
		Register(saleHandler).
		Register(salesReturnHandler).
		Register(chargeHandler).
		Setup()

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

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
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
