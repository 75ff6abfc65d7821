package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"admissionapi/internal/config"
	"admissionapi/internal/database"
	"admissionapi/internal/database/migration"
	handlers "admissionapi/internal/http/handler"
	"admissionapi/internal/http/middleware"
	"admissionapi/internal/integration"
	"admissionapi/internal/otel"
	"admissionapi/internal/registry"
	"admissionapi/internal/repository/postgres"
	"admissionapi/internal/service"
	"admissionapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	ctx := context.Background()

	// Initialize tracing (degrades to noop when the exporter is unreachable)
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(ctx) }()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Repositories, registry and services
	caseRepo := postgres.NewCasePostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	transitionRepo := postgres.NewTransitionPostgres(db)
	dispatchRepo := postgres.NewDispatchPostgres(db)
	templates := registry.Default()

	svcs := handlers.Services{
		Cases:      service.NewCaseService(caseRepo),
		Workflow:   service.NewWorkflowService(templates, caseRepo, docRepo, transitionRepo, dispatchRepo),
		Checklist:  service.NewChecklistService(templates, caseRepo, docRepo),
		Documents:  service.NewDocumentService(templates, objStore, caseRepo, docRepo),
		Dispatches: service.NewDispatchService(caseRepo, dispatchRepo, integration.NewLoggingClient()),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, svcs)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
