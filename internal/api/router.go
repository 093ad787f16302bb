package api

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/marketsquare/storefront-api/internal/api/handler"
	"github.com/marketsquare/storefront-api/internal/api/middleware"
	"github.com/marketsquare/storefront-api/internal/core/service"
	"github.com/marketsquare/storefront-api/internal/infrastructure/db/postgres"
	redisstore "github.com/marketsquare/storefront-api/internal/infrastructure/db/redis"
	"github.com/marketsquare/storefront-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *sqlx.DB, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Secure())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: cfg.CORSOrigins,
		}))
	} else {
		e.Use(echomiddleware.CORS())
	}
	if cfg.RateLimit.Enabled {
		e.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStoreWithConfig(
			echomiddleware.RateLimiterMemoryStoreConfig{
				Rate:  rate.Limit(cfg.RateLimit.RPS),
				Burst: cfg.RateLimit.Burst,
			},
		)))
	}
	e.Use(echoprometheus.NewMiddleware("storefront"))
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Dependencies ---
	txManager := postgres.NewTxManager(db)
	userRepo := postgres.NewUserRepository(db)
	addressRepo := postgres.NewAddressRepository(db)
	productRepo := postgres.NewProductRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	wishlistRepo := postgres.NewWishlistRepository(db)
	blacklist := redisstore.NewTokenBlacklist(rdb)
	policy := service.NewRolePolicy()

	userService := service.NewUserService(userRepo, addressRepo, blacklist, policy,
		cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost, log)
	productService := service.NewProductService(productRepo, policy, log)
	cartService := service.NewCartService(cartRepo, productRepo, log)
	orderService := service.NewOrderService(txManager, orderRepo, productRepo, addressRepo, policy, log)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, log)

	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)

	auth := middleware.Auth(cfg.JWTSecret, userRepo, blacklist)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret, userRepo, blacklist)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/logout", userHandler.Logout, auth)
	users.GET("", userHandler.FindAll, auth)
	users.GET("/addresses", userHandler.ListAddresses, auth)
	users.POST("/addresses", userHandler.AddAddress, auth)
	users.GET("/:id", userHandler.FindByID, auth)

	// --- Product routes ---
	products := e.Group("/products")
	products.GET("", productHandler.List, optionalAuth)
	products.GET("/:id", productHandler.GetByID)
	products.POST("", productHandler.Create, auth)
	products.PATCH("/:id", productHandler.Update, auth)
	products.DELETE("/:id", productHandler.Delete, auth)

	// --- Cart routes ---
	cart := e.Group("/cart", auth)
	cart.GET("", cartHandler.Get)
	cart.POST("", cartHandler.Add)
	cart.PATCH("/:productId", cartHandler.UpdateItem)
	cart.DELETE("/:productId", cartHandler.RemoveItem)
	cart.DELETE("", cartHandler.Clear)

	// --- Order routes ---
	orders := e.Group("/orders", auth)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.GetByID)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)

	// --- Wishlist routes ---
	wishlist := e.Group("/wishlist", auth)
	wishlist.POST("", wishlistHandler.Add)
	wishlist.GET("", wishlistHandler.List)
	wishlist.DELETE("/:productId", wishlistHandler.Remove)
	wishlist.DELETE("", wishlistHandler.Clear)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
