package routes

import (
	"errors"
	"log/slog"
	"time"

	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/config"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/middleware"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Deps are the handlers and stores the router mounts. LimiterStorage may be
// nil, in which case rate limits are kept in process memory.
type Deps struct {
	Auth           *handlers.AuthHandler
	Health         *handlers.HealthHandler
	Plugins        []apps.Plugin
	LimiterStorage fiber.Storage
}

// NewApp builds the fiber app with the global middleware chain.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg.CORSOrigins))
	app.Use(securityHeaders)
	return app
}

func securityHeaders(c *fiber.Ctx) error {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-XSS-Protection", "1; mode=block")
	return c.Next()
}

func Setup(app *fiber.App, cfg *config.Config, deps Deps) {
	api := app.Group("/api")

	// 100 req / 15 min per IP across the API.
	api.Use(limiter.New(limiter.Config{
		Max:               100,
		Expiration:        15 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return "api:" + c.IP() },
		Storage:           deps.LimiterStorage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail("Too many requests, please try again later"))
		},
	}))

	api.Get("/health", deps.Health.Check)

	protect := middleware.JWTProtected(cfg.JWTSecret)

	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return "auth:" + c.IP() },
		Storage:           deps.LimiterStorage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail("Too many authentication attempts, please try again later"))
		},
	}))
	auth.Post("/signup", deps.Auth.Signup)
	auth.Post("/login", deps.Auth.Login)
	auth.Post("/refresh", deps.Auth.Refresh)
	auth.Post("/logout", protect, deps.Auth.Logout)
	auth.Get("/me", protect, deps.Auth.Me)
	auth.Put("/update", protect, deps.Auth.Update)

	// Plugin routes share one protected group so public routes above stay
	// outside the JWT middleware.
	protected := api.Group("", protect)
	for _, p := range deps.Plugins {
		p.RegisterRoutes(protected)
		slog.Debug("plugin routes registered", "plugin", p.ID())
	}

	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Route " + c.OriginalURL() + " not found"))
	})
}

// ErrorHandler renders errors that escape handlers. 5xx details are logged and
// reported to Sentry but never returned to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.Fail(message))
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
