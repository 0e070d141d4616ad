package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	accountapp "github.com/bazaar/backend/internal/application/account"
	cartapp "github.com/bazaar/backend/internal/application/cart"
	catalogapp "github.com/bazaar/backend/internal/application/catalog"
	orderapp "github.com/bazaar/backend/internal/application/order"
	walletapp "github.com/bazaar/backend/internal/application/wallet"
	"github.com/bazaar/backend/internal/infrastructure/auth"
	"github.com/bazaar/backend/internal/infrastructure/config"
	"github.com/bazaar/backend/internal/infrastructure/event"
	"github.com/bazaar/backend/internal/infrastructure/logger"
	"github.com/bazaar/backend/internal/infrastructure/payment"
	"github.com/bazaar/backend/internal/infrastructure/persistence"
	"github.com/bazaar/backend/internal/interfaces/http/handler"
	"github.com/bazaar/backend/internal/interfaces/http/middleware"
	"github.com/bazaar/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

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

	log.Info("Starting Bazaar Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
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
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)

	// Transaction scopes bind the multi-repository use cases to a single
	// database transaction
	orderScope := persistence.NewGormOrderTransactionScope(db.DB)
	catalogScope := persistence.NewGormCatalogTransactionScope(db.DB)
	walletScope := persistence.NewGormWalletTransactionScope(db.DB)

	// Event bus with a wildcard audit logger
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))

	// Online payment gateway
	gateway, err := payment.NewZarinPalAdapter(&payment.ZarinPalConfig{
		MerchantID: cfg.Gateway.MerchantID,
		Sandbox:    cfg.Gateway.Sandbox,
		Timeout:    cfg.Gateway.RequestTimeout,
	})
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	// Initialize application services
	accountService := accountapp.NewService(customerRepo, eventBus, log)
	sellerService := accountapp.NewSellerService(sellerRepo, log)
	addressService := accountapp.NewAddressService(addressRepo, log)
	cartService := cartapp.NewService(cartRepo, productRepo, log)
	categoryService := catalogapp.NewCategoryService(catalogScope, log)
	productService := catalogapp.NewProductService(catalogScope, eventBus, log)
	// Inventory decreases reconcile carts and unpaid orders inside the
	// same transaction
	productService.RegisterInventoryObserver(catalogapp.ReconcilerFactory(log))

	checkoutService := orderapp.NewCheckoutService(orderScope, eventBus, log)
	orderService := orderapp.NewService(orderScope, eventBus, log)
	paymentService := orderapp.NewPaymentService(orderScope, gateway, cfg.Gateway.PaymentCallback, eventBus, log)
	callbackService := orderapp.NewCallbackService(orderScope, gateway, eventBus, log)
	topUpService := walletapp.NewTopUpService(walletScope, gateway, cfg.Gateway.TopUpCallback, eventBus, log)

	// JWT validation service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order: request ID, panic recovery, request
	// logging, security headers, CORS, body size limit, JWT auth
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Catalog browsing and delivery date listing are public; everything
	// else under /api/v1 carries a bearer token
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	jwtConfig.SkipFunc = func(c *gin.Context) bool {
		if c.Request.Method != http.MethodGet {
			return false
		}
		path := c.Request.URL.Path
		return path == "/api/v1/categories" ||
			path == "/api/v1/orders/delivery-dates" ||
			strings.HasPrefix(path, "/api/v1/products")
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Register route groups
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewHealthHandler(db.DB, version)).
		Register(handler.NewProductHandler(productService, sellerService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewCustomerHandler(accountService)).
		Register(handler.NewSellerHandler(sellerService)).
		Register(handler.NewAddressHandler(accountService, addressService)).
		Register(handler.NewCartHandler(accountService, cartService)).
		Register(handler.NewOrderHandler(accountService, checkoutService, orderService)).
		Register(handler.NewPaymentHandler(accountService, paymentService, callbackService)).
		Register(handler.NewWalletHandler(accountService, topUpService))
	r.Setup()

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
