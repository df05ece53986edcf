package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/fadilmartias/founder-assessment/internal/domain/fiber/handler"
	"github.com/fadilmartias/founder-assessment/internal/logger"
	"github.com/fadilmartias/founder-assessment/internal/middleware"
	"github.com/fadilmartias/founder-assessment/internal/observability"
	"github.com/fadilmartias/founder-assessment/internal/repository"
	"github.com/fadilmartias/founder-assessment/internal/service"
	"github.com/fadilmartias/founder-assessment/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if envErr != nil {
		log.Debug("could not load .env file, using process environment")
	}

	if err := cfg.Validate(); err != nil {
		var missing *config.MissingCredentialsError
		if errors.As(err, &missing) {
			log.WithField("missing", missing.Keys).Fatal("required provider credentials are not set")
		}
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Init(ctx, observability.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		log.WithError(err).Fatal("could not initialise telemetry")
	}

	services, err := service.NewSet(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("could not build provider adapters")
	}
	if cfg.Pipeline.MockProviders {
		log.Warn("MOCK_PROVIDERS is on, no vendor will be called")
	}

	uc := usecase.NewAssessmentUsecase(
		services,
		repository.NewMemoryReportRepository(),
		usecase.OptionsFromConfig(cfg.Pipeline),
		log,
		observability.Global(),
	)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// multipart overhead on top of the audio cap
		BodyLimit: int(cfg.Pipeline.MaxAudioBytes) + 2*1024*1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "error": message})
		},
	})
	app.Use(middleware.RequestLogger(log))
	if !cfg.App.IsProduction() {
		app.Use(fiberlogger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	// Use middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.App.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return cfg.App.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	handler.NewAssessmentHandler(uc, log, cfg.App.Name, cfg.Pipeline.MaxAudioBytes).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.WithField("goroutines", runtime.NumGoroutine()).Debug("runtime stats")
			}
		}
	}()

	go func() {
		log.WithField("addr", cfg.App.Addr()).Info("server running")
		if err := app.Listen(cfg.App.Addr()); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.WithError(err).Error("telemetry shutdown failed")
	}
}
