package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	CORSOrigins    []string
	MetricsEnabled bool
	Version        string
	Env            string
}

func SetupRouter(app *fiber.App, handler *RecommendHandler, opts RouterOptions) {
	// Middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(AccessLog())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(opts.CORSOrigins, ","),
		AllowMethods:  "GET,POST,OPTIONS",
		ExposeHeaders: "X-RateLimit-Limit,X-RateLimit-Remaining,X-RateLimit-Reset,Retry-After,X-Request-ID",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": opts.Version,
			"env":     opts.Env,
		})
	})
	if opts.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Endpoints
	r := app.Group("/api")
	r.Post("/recommend", handler.HandleRecommend)
	r.All("/recommend", handler.MethodNotAllowed)
	r.Get("/samples/:domain", handler.HandleSamples)
}
