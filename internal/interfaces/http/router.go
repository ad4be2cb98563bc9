package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/Multitenant-api/internal/application/dto"
	"github.com/jhoicas/Multitenant-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName  string
	AuthUC   authService
	TenantUC tenantService
	UserUC   userService
	StockUC  stockService
	Verifier credentialVerifier
	Resolver scopeResolver
	Metrics  *Metrics
	Logger   *logger.Logger

	// RateLimitMax intentos por IP en /login y /register durante RateLimitWindow. 0 lo desactiva.
	RateLimitMax    int
	RateLimitWindow time.Duration
	// CORSOrigins lista separada por comas; vacío desactiva CORS.
	CORSOrigins string
	// RequestTimeout deadline del contexto de cada request; 0 usa DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// NewApp construye la aplicación Fiber con middlewares globales y rutas.
func NewApp(deps RouterDeps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(AccessLog(log, deps.Metrics))
	app.Use(RequestContext(deps.RequestTimeout))
	app.Use(helmet.New())
	if origins := strings.TrimSpace(deps.CORSOrigins); origins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	// Auth (público, con límite de intentos por IP)
	authHandler := NewAuthHandler(deps.AuthUC)
	guard := []fiber.Handler{}
	if deps.RateLimitMax > 0 {
		guard = append(guard, limiter.New(limiter.Config{
			Max:        deps.RateLimitMax,
			Expiration: deps.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
					Code:    "RATE_LIMITED",
					Message: "demasiados intentos, intente más tarde",
				})
			},
		}))
	}
	app.Post("/register", append(guard, authHandler.Register)...)
	app.Post("/login", append(guard, authHandler.Login)...)

	// Rutas protegidas: credencial verificada y alcance de tenant resuelto antes del handler.
	scoped := []fiber.Handler{
		AuthMiddleware(deps.Verifier, deps.Metrics),
		TenantMiddleware(deps.Resolver, deps.Metrics),
	}

	userHandler := NewUserHandler(deps.UserUC)
	app.Get("/me", append(scoped, userHandler.Me)...)

	tenants := app.Group("/tenants", scoped...)
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Get("/", tenantHandler.List)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/:id", tenantHandler.GetByID)

	users := app.Group("/users", scoped...)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	stocks := app.Group("/stocks", scoped...)
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Get("/", stockHandler.List)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Put("/:id", stockHandler.Update)
	stocks.Delete("/:id", stockHandler.Delete)
}
