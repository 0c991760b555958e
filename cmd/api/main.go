package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"payverify/docs"
	"payverify/internal/config"
	"payverify/internal/database"
	"payverify/internal/database/migration"
	handlers "payverify/internal/http/handler"
	"payverify/internal/http/middleware"
	"payverify/internal/ocr"
	"payverify/internal/otel"
	"payverify/internal/repository/postgres"
	"payverify/internal/service"
	"payverify/internal/storage"
)

// @title Payment Advice Verification API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.Local

	ctx := context.Background()

	// Initialize tracing; degrades to noop when the collector is unreachable
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

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

	detector, err := ocr.NewVisionDetector(ctx, cfg.Vision.CredentialsFile, []byte(cfg.Vision.CredentialsJSON))
	if err != nil {
		log.Fatalf("failed to initialize vision client: %v", err)
	}

	// Initialize repositories and services
	invoiceRepo := postgres.NewInvoicePostgres(db)
	verificationRepo := postgres.NewVerificationPostgres(db)
	verifySvc := service.NewVerificationService(detector, invoiceRepo, verificationRepo, objStore, cfg.Matching)
	statusSvc := service.NewStatusService(invoiceRepo, verificationRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, verifySvc, statusSvc)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
