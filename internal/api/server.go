package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type AppOptions struct {
	AllowedOrigins string
	// Metrics is optional; nil disables request metrics and /metrics.
	Metrics *Metrics
}

// NewApp assembles the middleware chain and registers every route.
func NewApp(handler *Handler, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "cycletracker",
		DisableStartupMessage: true,
	})

	allowedOrigins := opts.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: contextRequestIDKey,
	}))
	app.Use(RequestLogger(handler.logger))
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware)
		app.Get("/metrics", opts.Metrics.Handler())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language",
	}))
	app.Use(handler.LanguageMiddleware)

	RegisterRoutes(app, handler)
	return app
}
