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

	catalogapp "github.com/paintshop/backend/internal/application/catalog"
	financeapp "github.com/paintshop/backend/internal/application/finance"
	identityapp "github.com/paintshop/backend/internal/application/identity"
	inventoryapp "github.com/paintshop/backend/internal/application/inventory"
	journalapp "github.com/paintshop/backend/internal/application/journal"
	ledgerapp "github.com/paintshop/backend/internal/application/ledger"
	partnerapp "github.com/paintshop/backend/internal/application/partner"
	"github.com/paintshop/backend/internal/infrastructure/auth"
	"github.com/paintshop/backend/internal/infrastructure/config"
	"github.com/paintshop/backend/internal/infrastructure/logger"
	"github.com/paintshop/backend/internal/infrastructure/persistence"
	"github.com/paintshop/backend/internal/interfaces/http/handler"
	"github.com/paintshop/backend/internal/interfaces/http/middleware"
	"github.com/paintshop/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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
		_ = log.Sync()
	}()

	log.Info("Starting Paint Shop Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

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

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	colorRepo := persistence.NewGormColorRepository(db.DB)
	stockRepo := persistence.NewGormStockLevelRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	vendorTxRepo := persistence.NewGormVendorTransactionRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// Application services
	adjustmentService := inventoryapp.NewAdjustmentService(stockRepo, log)
	depletionService := inventoryapp.NewDepletionService(purchaseRepo, log)
	inventoryService := inventoryapp.NewInventoryService(stockRepo, productRepo, colorRepo, log)
	purchaseService := journalapp.NewPurchaseService(purchaseRepo, txScope, adjustmentService, log)
	saleService := journalapp.NewSaleService(saleRepo, productRepo, colorRepo, txScope, adjustmentService, depletionService, log)
	ledgerService := ledgerapp.NewLedgerService(vendorTxRepo, log)
	productService := catalogapp.NewProductService(productRepo, txScope, log)
	colorService := catalogapp.NewColorService(colorRepo, log)
	contactService := partnerapp.NewContactService(contactRepo, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	// HTTP engine and middleware
	middleware.SetupValidator()
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler()).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewColorHandler(colorService)).
		Register(handler.NewInventoryHandler(inventoryService, adjustmentService)).
		Register(handler.NewPurchaseHandler(purchaseService)).
		Register(handler.NewSaleHandler(saleService)).
		Register(handler.NewLedgerHandler(ledgerService)).
		Register(handler.NewContactHandler(contactService)).
		Register(handler.NewExpenseHandler(expenseService))
	r.Setup()

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
