package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/weatherdash/weather-gateway/internal/api/http"
	"github.com/weatherdash/weather-gateway/internal/config"
	"github.com/weatherdash/weather-gateway/internal/geo"
	"github.com/weatherdash/weather-gateway/internal/logger"
	"github.com/weatherdash/weather-gateway/internal/weather"
	"github.com/weatherdash/weather-gateway/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog := logger.New(cfg.LogLevel, cfg.Env)

	if cfg.OpenWeatherAPIKey == "" {
		appLog.Warnf("no OPENWEATHER_API_KEY configured; every request will be served synthetic data")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Tier chain in priority order; the synthetic tier at the end makes
	// resolution total.
	tiers := []weather.Tier{
		providers.NewPrimaryTier(httpClient, cfg.OpenWeatherAPIKey, appLog),
		providers.NewLegacyTier(httpClient, cfg.OpenWeatherAPIKey, cfg.Bucket, appLog),
		providers.NewSyntheticTier(),
	}

	resolver := weather.NewResolver(tiers, appLog, nil)

	gaz := geo.NewGazetteer(cfg.GeocoderAPIKey, appLog)

	// Resolve the panel once at startup; unknown names fall back to the
	// default point so the panel size stays fixed.
	panel := make([]weather.Point, 0, len(cfg.PanelCities))
	for _, city := range cfg.PanelCities {
		pt, ok := gaz.Resolve(city)
		if !ok {
			appLog.Warnf("panel city %q not in gazetteer; using default point", city)
			pt = geo.DefaultPoint
		}
		panel = append(panel, pt)
	}

	handler := httpapi.NewHandler(resolver, gaz, panel, cfg.PanelMaxConcurrency, appLog)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-gateway",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-gateway",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, handler)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLog.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Errorf("error during shutdown: %v", err)
	}
}
