package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bankinfo/bank-information-system/internal/api/handler"
	"github.com/bankinfo/bank-information-system/internal/api/middleware"
	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/service"
	"github.com/bankinfo/bank-information-system/internal/infrastructure/config"
	mongodb "github.com/bankinfo/bank-information-system/internal/infrastructure/db/mongo"
	redisdb "github.com/bankinfo/bank-information-system/internal/infrastructure/db/redis"
	healthhandlers "github.com/bankinfo/bank-information-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; login throttling and the Redis readiness check are then
// skipped.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bankinfo"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	accountRepo := mongodb.NewAccountRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	accountService := service.NewAccountService(accountRepo, log)
	adminService := service.NewAdminService(accountRepo, userRepo, log)

	var limiter handler.LoginLimiter
	if rdb != nil {
		limiter = redisdb.NewLoginThrottle(rdb, log)
	}

	authHandler := handler.NewAuthHandler(authService, limiter)
	accountHandler := handler.NewAccountHandler(accountService)
	adminHandler := handler.NewAdminHandler(adminService)

	authenticate := middleware.Authenticate(tokenService, userRepo)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Auth routes (public) ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Bank account routes (bearer token required) ---
	accounts := e.Group("/bank-accounts", authenticate)
	accounts.POST("", accountHandler.Create)
	accounts.GET("", accountHandler.List)
	accounts.PUT("/:id", accountHandler.Update)
	accounts.DELETE("/:id", accountHandler.Delete)

	// --- Admin routes (bearer token + admin role) ---
	admin := e.Group("/admin", authenticate, adminOnly)
	admin.GET("/bank-accounts", adminHandler.Search)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
