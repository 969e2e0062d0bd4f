// Package main provides the flowvault API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/flowvault/flowvault/pkg/services"
	"github.com/flowvault/flowvault/pkg/versionstore"
	"github.com/flowvault/flowvault/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger   *slog.Logger
	store    versionstore.VersionStore
	source   services.DocumentSource
	validate *validator.Validate
}

func NewAPI(logger *slog.Logger, store versionstore.VersionStore, source services.DocumentSource) *API {
	return &API{
		logger:   logger,
		store:    store,
		source:   source,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	comparisonService := services.NewComparison(a.store)
	assessmentService := services.NewAssessment(a.source)

	handlers := web.NewAPIHandlers(comparisonService, assessmentService, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Flowvault API")
	})

	w := app.Group("/workflows")
	w.Post("/:id/compare", handlers.CompareVersions)
	w.Post("/compare", handlers.CompareDocuments)
	w.Post("/assess", handlers.AssessWorkflow)
	w.Post("/project", handlers.ProjectWorkflow)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
