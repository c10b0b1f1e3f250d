package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	// Internal packages
	weatherclient "github.com/seu-repo/gastro-bi/internal/adapter/external/weather"
	"github.com/seu-repo/gastro-bi/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/gastro-bi/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/gastro-bi/internal/adapter/storage/csvstore"
	"github.com/seu-repo/gastro-bi/internal/adapter/storage/postgres"
	"github.com/seu-repo/gastro-bi/internal/observability/telemetry"
	"github.com/seu-repo/gastro-bi/internal/ports"
	"github.com/seu-repo/gastro-bi/internal/service/events"
	"github.com/seu-repo/gastro-bi/internal/service/health"
	"github.com/seu-repo/gastro-bi/internal/service/ingest"
	"github.com/seu-repo/gastro-bi/internal/service/kpi"
	"github.com/seu-repo/gastro-bi/internal/service/motivation"
	"github.com/seu-repo/gastro-bi/internal/service/report"
	weathersvc "github.com/seu-repo/gastro-bi/internal/service/weather"
	"github.com/seu-repo/gastro-bi/pkg/config"
)

const (
	serviceName    = "gastro-bi"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Gastro BI backend",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(
			cfg.OpenTelemetry.ServiceName, serviceVersion, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize Warehouse Connection Pool.
	// The warehouse is optional at startup: without it the service runs in
	// degraded mode and every KPI request resolves through the fallback.
	var warehouseGateway ports.WarehouseGateway
	var sqlDB *sql.DB
	if cfg.Warehouse.URL != "" {
		db, err := postgres.NewConnection(cfg.Warehouse, logger)
		if err != nil {
			logger.Warn("Warehouse unavailable, running on synthetic fallback only", zap.Error(err))
		} else {
			warehouseGateway = postgres.NewWarehouseRepository(db, cfg.Warehouse, logger)
			if sqlDB, err = db.DB(); err != nil {
				logger.Warn("Failed to get underlying SQL DB", zap.Error(err))
			} else {
				defer sqlDB.Close()
			}
		}
	} else {
		logger.Warn("No warehouse URL configured, running on synthetic fallback only")
	}

	// 5. Initialize Stores
	datasetStore := csvstore.NewStore(cfg.Datasets.Dir, logger)
	weatherStore := csvstore.NewWeatherFileStore(cfg.Weather.Dir, logger)
	reportStore := csvstore.NewReportFileStore(cfg.Weather.Dir, logger)

	// 6. Initialize Weather Provider Client
	weatherProvider := weatherclient.NewVisualCrossingClient(cfg.Weather.Provider, logger)

	// 7. Initialize Services (Business Logic Layer)
	weatherService := weathersvc.NewService(weatherProvider, weatherStore, logger)
	fallbackResolver := kpi.NewFallbackResolver(datasetStore, logger)
	kpiService := kpi.NewService(warehouseGateway, fallbackResolver, weatherService, logger)
	ingestService := ingest.NewService(weatherProvider, weatherStore, cfg.Report.DefaultVenues, logger)
	eventsService := events.NewService(datasetStore, logger)
	motivationService := motivation.NewService(datasetStore, logger)
	reportService := report.NewService(
		kpiService, datasetStore, weatherService, motivationService, eventsService,
		cfg.Report.Company, logger)

	healthService := health.NewService(&health.Config{
		Version:     serviceVersion,
		DB:          sqlDB,
		DatasetsDir: cfg.Datasets.Dir,
	}, logger)

	// 8. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.NewCORS(cfg.CORS))

	// Health Check Endpoints
	healthHandler := health.NewFiberHandler(healthService)
	healthHandler.RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Backend connected"})
	})

	kpiHandler := handlers.NewKPIHandler(kpiService, logger)
	app.Post("/query", kpiHandler.Query)

	weatherHandler := handlers.NewWeatherHandler(weatherService, ingestService, logger)
	app.Get("/weather", weatherHandler.Search)
	app.Post("/ingest/daily-weather", weatherHandler.Ingest)

	eventsHandler := handlers.NewEventsHandler(eventsService, logger)
	app.Get("/events", eventsHandler.ForDay)

	motivationHandler := handlers.NewMotivationHandler(
		motivationService, cfg.Report.DefaultLang, cfg.Report.DefaultTone, logger)
	app.Get("/motivation", motivationHandler.PhraseOfTheDay)

	reportHandler := handlers.NewReportHandler(
		reportService, reportStore, cfg.Report.DefaultLang, cfg.Report.DefaultTone, logger)
	app.Get("/daily_report", reportHandler.Daily)
	app.Post("/save_report_csv", reportHandler.Save)

	// 9. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
