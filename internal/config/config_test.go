package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("PANEL_CITIES", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("PANEL_MAX_CONCURRENCY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Len(t, cfg.PanelCities, 8)
	assert.Equal(t, 4, cfg.PanelMaxConcurrency)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 9, cfg.Bucket.MorningHour)
	assert.Equal(t, 21, cfg.Bucket.NightHour)
	assert.Equal(t, 10, cfg.Bucket.NightCooling)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "key-123")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("PANEL_CITIES", "Miami, Boston ,Denver")
	t.Setenv("PANEL_MAX_CONCURRENCY", "2")
	t.Setenv("BUCKET_NIGHT_COOLING", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key-123", cfg.OpenWeatherAPIKey)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"Miami", "Boston", "Denver"}, cfg.PanelCities)
	assert.Equal(t, 2, cfg.PanelMaxConcurrency)
	assert.Equal(t, 7, cfg.Bucket.NightCooling)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("PANEL_MAX_CONCURRENCY", "0")
	_, err = Load()
	assert.Error(t, err)
}
