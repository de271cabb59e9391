package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/weatherdash/weather-gateway/internal/logger"
	"github.com/weatherdash/weather-gateway/internal/weather"
)

// LegacyTier queries the free 2.5 endpoints: one call for current conditions
// and one for a three-hour-step forecast. It has no UV index and no
// advisories, and its daily forecast is derived from the three-hour samples
// by the bucketer.
type LegacyTier struct {
	apiKey      string
	currentURL  string
	forecastURL string
	upstream    *upstreamClient
	bucket      weather.BucketConfig
	log         logger.Logger
}

func NewLegacyTier(client *http.Client, apiKey string, bucket weather.BucketConfig, log logger.Logger) *LegacyTier {
	return &LegacyTier{
		apiKey:      apiKey,
		currentURL:  "https://api.openweathermap.org/data/2.5/weather",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		upstream:    newUpstreamClient(client, "openweather-legacy", 5, 10),
		bucket:      bucket,
		log:         log.WithField("tier", string(weather.SourceLegacy)),
	}
}

func (t *LegacyTier) Name() weather.Source {
	return weather.SourceLegacy
}

// SetBaseURLs points the tier at different upstreams, used by tests.
func (t *LegacyTier) SetBaseURLs(current, forecast string) {
	t.currentURL = current
	t.forecastURL = forecast
}

type legacyCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type legacyVolume struct {
	ThreeH float64 `json:"3h"`
}

// legacyCurrentResponse is the raw 2.5 current-conditions shape.
type legacyCurrentResponse struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Gust  float64 `json:"gust"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int               `json:"visibility"`
	Weather    []legacyCondition `json:"weather"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

// legacyForecastResponse is the raw 2.5 forecast shape: a flat list of
// three-hour slots plus city metadata.
type legacyForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Pressure  int     `json:"pressure"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
			Gust  float64 `json:"gust"`
			Deg   int     `json:"deg"`
		} `json:"wind"`
		Clouds struct {
			All int `json:"all"`
		} `json:"clouds"`
		Visibility int               `json:"visibility"`
		Pop        float64           `json:"pop"`
		Rain       legacyVolume      `json:"rain"`
		Snow       legacyVolume      `json:"snow"`
		Weather    []legacyCondition `json:"weather"`
	} `json:"list"`
	City struct {
		Timezone int   `json:"timezone"`
		Sunrise  int64 `json:"sunrise"`
		Sunset   int64 `json:"sunset"`
	} `json:"city"`
}

// Fetch makes the current-conditions call, and the forecast call only when
// the query depends on forecast data. Either call failing makes the whole
// tier unavailable for that query.
func (t *LegacyTier) Fetch(ctx context.Context, pt weather.Point, query weather.Query, _ time.Time) (*weather.Report, error) {
	if t.apiKey == "" {
		return nil, weather.ErrUnavailable
	}

	var cur legacyCurrentResponse
	if err := t.upstream.getJSON(ctx, t.buildURL(t.currentURL, pt), &cur); err != nil {
		t.log.Warnf("current fetch failed for (%f, %f): %v", pt.Lat, pt.Lon, err)
		return nil, weather.ErrUnavailable
	}

	report := &weather.Report{
		Current: normalizeLegacyCurrent(pt, &cur),
		Alerts:  []weather.WeatherAdvisory{},
	}

	if !query.NeedsForecast() {
		return report, nil
	}

	var fc legacyForecastResponse
	if err := t.upstream.getJSON(ctx, t.buildURL(t.forecastURL, pt), &fc); err != nil {
		t.log.Warnf("forecast fetch failed for (%f, %f): %v", pt.Lat, pt.Lon, err)
		return nil, weather.ErrUnavailable
	}

	report.Hourly = normalizeLegacyForecast(&fc)
	if query == weather.QueryDaily || query == weather.QueryOneCall {
		report.Daily = deriveLegacyDaily(report.Hourly, &fc, t.bucket)
	}
	return report, nil
}

func (t *LegacyTier) buildURL(base string, pt weather.Point) string {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", pt.Lat))
	values.Set("lon", fmt.Sprintf("%f", pt.Lon))
	values.Set("appid", t.apiKey)
	values.Set("units", "imperial")
	return fmt.Sprintf("%s?%s", base, values.Encode())
}

func normalizeLegacyCurrent(pt weather.Point, raw *legacyCurrentResponse) *weather.CurrentConditions {
	desc, icon := firstLegacyCondition(raw.Weather)

	if pt.Name == "" {
		pt.Name = raw.Name
	}
	if pt.Country == "" {
		pt.Country = raw.Sys.Country
	}

	return &weather.CurrentConditions{
		Point:     pt,
		Timestamp: raw.Dt,

		Temperature:  weather.RoundTemp(raw.Main.Temp),
		TemperatureC: weather.CelsiusFor(raw.Main.Temp),
		FeelsLike:    weather.RoundTemp(raw.Main.FeelsLike),
		FeelsLikeC:   weather.CelsiusFor(raw.Main.FeelsLike),
		// dew point is not supplied by this tier; both scales stay zero

		Humidity:   raw.Main.Humidity,
		Pressure:   raw.Main.Pressure,
		WindSpeed:  raw.Wind.Speed,
		WindGust:   raw.Wind.Gust,
		WindDeg:    raw.Wind.Deg,
		CloudCover: raw.Clouds.All,
		Visibility: raw.Visibility,
		UVIndex:    0, // not supplied by this tier

		Description: desc,
		Icon:        icon,

		Sunrise: raw.Sys.Sunrise,
		Sunset:  raw.Sys.Sunset,

		UTCOffset: raw.Timezone,
	}
}

func normalizeLegacyForecast(raw *legacyForecastResponse) []weather.HourlyForecastSample {
	samples := make([]weather.HourlyForecastSample, 0, len(raw.List))
	for _, s := range raw.List {
		desc, icon := firstLegacyCondition(s.Weather)
		samples = append(samples, weather.HourlyForecastSample{
			Timestamp: s.Dt,

			Temperature:  weather.RoundTemp(s.Main.Temp),
			TemperatureC: weather.CelsiusFor(s.Main.Temp),
			FeelsLike:    weather.RoundTemp(s.Main.FeelsLike),
			FeelsLikeC:   weather.CelsiusFor(s.Main.FeelsLike),

			Humidity:   s.Main.Humidity,
			Pressure:   s.Main.Pressure,
			WindSpeed:  s.Wind.Speed,
			WindGust:   s.Wind.Gust,
			WindDeg:    s.Wind.Deg,
			CloudCover: s.Clouds.All,
			Visibility: s.Visibility,
			UVIndex:    0, // not supplied by this tier

			Description: desc,
			Icon:        icon,

			Pop:  s.Pop,
			Rain: s.Rain.ThreeH,
			Snow: s.Snow.ThreeH,
		})
	}
	return samples
}

// deriveLegacyDaily buckets the three-hour samples into day summaries and
// fills in sunrise/sunset from the city metadata, shifted by whole days.
func deriveLegacyDaily(samples []weather.HourlyForecastSample, raw *legacyForecastResponse, cfg weather.BucketConfig) []weather.DailyForecastSummary {
	daily := weather.BucketDaily(samples, raw.City.Timezone, cfg)
	const day = int64(24 * 60 * 60)
	for i := range daily {
		daily[i].Sunrise = raw.City.Sunrise + int64(i)*day
		daily[i].Sunset = raw.City.Sunset + int64(i)*day
	}
	return daily
}

func firstLegacyCondition(items []legacyCondition) (string, string) {
	if len(items) == 0 {
		return "", ""
	}
	return items[0].Description, items[0].Icon
}
