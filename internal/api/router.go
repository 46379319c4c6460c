package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mailforge/template-service/internal/api/handler"
	"github.com/mailforge/template-service/internal/api/middleware"
	"github.com/mailforge/template-service/internal/core/service"
	mongodb "github.com/mailforge/template-service/internal/infrastructure/db/mongo"
	redisdb "github.com/mailforge/template-service/internal/infrastructure/db/redis"
	"github.com/mailforge/template-service/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("templates"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	templateRepo := mongodb.NewTemplateRepository(db)
	tokenService := service.NewTokenService(jwtSecret, tokenTTL)
	limiter := redisdb.NewLoginLimiter(rdb)
	authService := service.NewAuthService(authRepo, tokenService, limiter, log)
	templateService := service.NewTemplateService(templateRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	templateHandler := handler.NewTemplateHandler(templateService)
	authGate := middleware.Auth(tokenService, authRepo)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Template routes (bearer token required) ---
	t := e.Group("/template", authGate)
	t.POST("", templateHandler.Create)
	t.GET("", templateHandler.List)
	t.GET("/:id", templateHandler.Get)
	t.PUT("/:id", templateHandler.Update)
	t.DELETE("/:id", templateHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
