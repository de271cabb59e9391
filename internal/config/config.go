package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/weatherdash/weather-gateway/internal/weather"
)

type AppConfig struct {
	// Single upstream credential; both real tiers authenticate with it.
	// When absent every resolution goes straight to the synthetic tier.
	OpenWeatherAPIKey string

	// Optional Google geocoding key for place names the built-in gazetteer
	// does not know.
	GeocoderAPIKey string

	// Outbound HTTP timeout per upstream call.
	HTTPTimeout time.Duration

	// Panel of city names served by type=multi, resolved against the
	// gazetteer at startup.
	PanelCities []string

	// Upper bound on concurrent per-point resolutions within one panel
	// request.
	PanelMaxConcurrency int

	// Reference hours for the daily bucketer.
	Bucket weather.BucketConfig

	Port     string
	Env      string
	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.PanelCities = splitList(getenvDefault("PANEL_CITIES",
		"Miami,Orlando,Tampa,New York,Los Angeles,Chicago,Houston,Seattle"))

	cfg.PanelMaxConcurrency = getenvInt("PANEL_MAX_CONCURRENCY", 4)
	if cfg.PanelMaxConcurrency < 1 {
		return nil, fmt.Errorf("PANEL_MAX_CONCURRENCY must be at least 1")
	}

	def := weather.DefaultBucketConfig()
	cfg.Bucket = weather.BucketConfig{
		MorningHour:  getenvInt("BUCKET_MORNING_HOUR", def.MorningHour),
		NoonHour:     getenvInt("BUCKET_NOON_HOUR", def.NoonHour),
		EveningHour:  getenvInt("BUCKET_EVENING_HOUR", def.EveningHour),
		NightHour:    getenvInt("BUCKET_NIGHT_HOUR", def.NightHour),
		NightCooling: getenvInt("BUCKET_NIGHT_COOLING", def.NightCooling),
	}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.Env = getenvDefault("APP_ENV", "development")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
