package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/taskforge/task-api/internal/api/handler"
	"github.com/taskforge/task-api/internal/api/middleware"
	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
	"github.com/taskforge/task-api/internal/core/service"
	"github.com/taskforge/task-api/internal/core/token"
	"github.com/taskforge/task-api/internal/infrastructure/config"
	"github.com/taskforge/task-api/internal/infrastructure/db/postgres"
	"github.com/taskforge/task-api/internal/infrastructure/db/redis"
	"github.com/taskforge/task-api/internal/infrastructure/http/handlers"
)

// Deps carries the shared resources the router needs to assemble handlers.
type Deps struct {
	Pool   *pgxpool.Pool
	Redis  *goredis.Client
	Tokens *token.Manager
	Hasher ports.PasswordHasher
	Config *config.Config
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("taskapi"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(d.Pool)
	taskRepo := postgres.NewTaskRepository(d.Pool)
	authService := service.NewAuthService(userRepo, d.Hasher, d.Tokens, d.Log)
	taskService := service.NewTaskService(taskRepo, d.Log)
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	adminHandler := handler.NewAdminHandler(authService)

	authMW := middleware.Auth(d.Tokens, d.Log)
	limiter := redis.NewRateLimiter(d.Redis, d.Config.RateLimit.Max, d.Config.RateLimit.Window)
	rateLimitMW := middleware.RateLimit(limiter, d.Log)

	// --- Auth routes (throttled, no bearer token required) ---
	auth := e.Group("/api/auth", rateLimitMW)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// --- Task routes (bearer token required) ---
	tasks := e.Group("/api/tasks", authMW)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Admin routes (bearer token + admin role) ---
	admin := e.Group("/api/admin", authMW, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Pool, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
