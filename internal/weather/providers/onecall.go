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

// PrimaryTier queries the One Call endpoint: current conditions, hourly and
// daily forecasts, and advisories in a single response. Richest tier, tried
// first.
type PrimaryTier struct {
	apiKey   string
	baseURL  string
	upstream *upstreamClient
	log      logger.Logger
}

func NewPrimaryTier(client *http.Client, apiKey string, log logger.Logger) *PrimaryTier {
	return &PrimaryTier{
		apiKey:   apiKey,
		baseURL:  "https://api.openweathermap.org/data/3.0/onecall",
		upstream: newUpstreamClient(client, "openweather", 5, 10),
		log:      log.WithField("tier", string(weather.SourcePrimary)),
	}
}

func (t *PrimaryTier) Name() weather.Source {
	return weather.SourcePrimary
}

// SetBaseURL points the tier at a different upstream, used by tests.
func (t *PrimaryTier) SetBaseURL(u string) {
	t.baseURL = u
}

// oneCallResponse is the raw One Call payload shape. Only fields the
// normalizer reads are declared.
type oneCallResponse struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Timezone       string  `json:"timezone"`
	TimezoneOffset int     `json:"timezone_offset"`

	Current struct {
		Dt         int64   `json:"dt"`
		Sunrise    int64   `json:"sunrise"`
		Sunset     int64   `json:"sunset"`
		Temp       float64 `json:"temp"`
		FeelsLike  float64 `json:"feels_like"`
		Pressure   int     `json:"pressure"`
		Humidity   int     `json:"humidity"`
		DewPoint   float64 `json:"dew_point"`
		UVI        float64 `json:"uvi"`
		Clouds     int     `json:"clouds"`
		Visibility int     `json:"visibility"`
		WindSpeed  float64 `json:"wind_speed"`
		WindGust   float64 `json:"wind_gust"`
		WindDeg    int     `json:"wind_deg"`
		Weather    []oneCallCondition `json:"weather"`
	} `json:"current"`

	Hourly []struct {
		Dt         int64              `json:"dt"`
		Temp       float64            `json:"temp"`
		FeelsLike  float64            `json:"feels_like"`
		Pressure   int                `json:"pressure"`
		Humidity   int                `json:"humidity"`
		UVI        float64            `json:"uvi"`
		Clouds     int                `json:"clouds"`
		Visibility int                `json:"visibility"`
		WindSpeed  float64            `json:"wind_speed"`
		WindGust   float64            `json:"wind_gust"`
		WindDeg    int                `json:"wind_deg"`
		Pop        float64            `json:"pop"`
		Rain       oneCallVolume      `json:"rain"`
		Snow       oneCallVolume      `json:"snow"`
		Weather    []oneCallCondition `json:"weather"`
	} `json:"hourly"`

	Daily []struct {
		Dt        int64   `json:"dt"`
		Sunrise   int64   `json:"sunrise"`
		Sunset    int64   `json:"sunset"`
		Moonrise  int64   `json:"moonrise"`
		Moonset   int64   `json:"moonset"`
		MoonPhase float64 `json:"moon_phase"`
		Summary   string  `json:"summary"`
		Temp      struct {
			Day   float64 `json:"day"`
			Min   float64 `json:"min"`
			Max   float64 `json:"max"`
			Night float64 `json:"night"`
			Eve   float64 `json:"eve"`
			Morn  float64 `json:"morn"`
		} `json:"temp"`
		FeelsLike struct {
			Day   float64 `json:"day"`
			Night float64 `json:"night"`
		} `json:"feels_like"`
		Pressure  int                `json:"pressure"`
		Humidity  int                `json:"humidity"`
		WindSpeed float64            `json:"wind_speed"`
		WindGust  float64            `json:"wind_gust"`
		WindDeg   int                `json:"wind_deg"`
		Clouds    int                `json:"clouds"`
		UVI       float64            `json:"uvi"`
		Pop       float64            `json:"pop"`
		Rain      float64            `json:"rain"`
		Snow      float64            `json:"snow"`
		Weather   []oneCallCondition `json:"weather"`
	} `json:"daily"`

	Alerts []struct {
		SenderName  string   `json:"sender_name"`
		Event       string   `json:"event"`
		Start       int64    `json:"start"`
		End         int64    `json:"end"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	} `json:"alerts"`
}

type oneCallCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// oneCallVolume covers the {"1h": x} shape of hourly precipitation.
type oneCallVolume struct {
	OneH float64 `json:"1h"`
}

// Fetch issues one request and normalizes every section. Any failure is
// logged and folded into ErrUnavailable so the resolver advances.
func (t *PrimaryTier) Fetch(ctx context.Context, pt weather.Point, query weather.Query, _ time.Time) (*weather.Report, error) {
	if t.apiKey == "" {
		return nil, weather.ErrUnavailable
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", pt.Lat))
	values.Set("lon", fmt.Sprintf("%f", pt.Lon))
	values.Set("appid", t.apiKey)
	values.Set("units", "imperial")

	var raw oneCallResponse
	if err := t.upstream.getJSON(ctx, fmt.Sprintf("%s?%s", t.baseURL, values.Encode()), &raw); err != nil {
		t.log.Warnf("one call fetch failed for (%f, %f): %v", pt.Lat, pt.Lon, err)
		return nil, weather.ErrUnavailable
	}

	return normalizeOneCall(pt, &raw), nil
}

// normalizeOneCall maps the raw One Call payload onto the shared records,
// attaching a derived Celsius value to every temperature field.
func normalizeOneCall(pt weather.Point, raw *oneCallResponse) *weather.Report {
	desc, icon := firstCondition(raw.Current.Weather)

	cur := &weather.CurrentConditions{
		Point:     pt,
		Timestamp: raw.Current.Dt,

		Temperature:  weather.RoundTemp(raw.Current.Temp),
		TemperatureC: weather.CelsiusFor(raw.Current.Temp),
		FeelsLike:    weather.RoundTemp(raw.Current.FeelsLike),
		FeelsLikeC:   weather.CelsiusFor(raw.Current.FeelsLike),
		DewPoint:     weather.RoundTemp(raw.Current.DewPoint),
		DewPointC:    weather.CelsiusFor(raw.Current.DewPoint),

		Humidity:   raw.Current.Humidity,
		Pressure:   raw.Current.Pressure,
		WindSpeed:  raw.Current.WindSpeed,
		WindGust:   raw.Current.WindGust,
		WindDeg:    raw.Current.WindDeg,
		CloudCover: raw.Current.Clouds,
		Visibility: raw.Current.Visibility,
		UVIndex:    raw.Current.UVI,

		Description: desc,
		Icon:        icon,

		Sunrise: raw.Current.Sunrise,
		Sunset:  raw.Current.Sunset,

		Timezone:  raw.Timezone,
		UTCOffset: raw.TimezoneOffset,
	}

	hourly := make([]weather.HourlyForecastSample, 0, len(raw.Hourly))
	for _, h := range raw.Hourly {
		d, i := firstCondition(h.Weather)
		hourly = append(hourly, weather.HourlyForecastSample{
			Timestamp: h.Dt,

			Temperature:  weather.RoundTemp(h.Temp),
			TemperatureC: weather.CelsiusFor(h.Temp),
			FeelsLike:    weather.RoundTemp(h.FeelsLike),
			FeelsLikeC:   weather.CelsiusFor(h.FeelsLike),

			Humidity:   h.Humidity,
			Pressure:   h.Pressure,
			WindSpeed:  h.WindSpeed,
			WindGust:   h.WindGust,
			WindDeg:    h.WindDeg,
			CloudCover: h.Clouds,
			Visibility: h.Visibility,
			UVIndex:    h.UVI,

			Description: d,
			Icon:        i,

			Pop:  h.Pop,
			Rain: h.Rain.OneH,
			Snow: h.Snow.OneH,
		})
	}

	daily := make([]weather.DailyForecastSummary, 0, len(raw.Daily))
	for _, d := range raw.Daily {
		de, ic := firstCondition(d.Weather)
		daily = append(daily, weather.DailyForecastSummary{
			Timestamp: d.Dt,
			Sunrise:   d.Sunrise,
			Sunset:    d.Sunset,
			Moonrise:  d.Moonrise,
			Moonset:   d.Moonset,
			MoonPhase: d.MoonPhase,
			Summary:   d.Summary,

			TempDay:     weather.RoundTemp(d.Temp.Day),
			TempDayC:    weather.CelsiusFor(d.Temp.Day),
			TempMin:     weather.RoundTemp(d.Temp.Min),
			TempMinC:    weather.CelsiusFor(d.Temp.Min),
			TempMax:     weather.RoundTemp(d.Temp.Max),
			TempMaxC:    weather.CelsiusFor(d.Temp.Max),
			TempNight:   weather.RoundTemp(d.Temp.Night),
			TempNightC:  weather.CelsiusFor(d.Temp.Night),
			TempMorn:    weather.RoundTemp(d.Temp.Morn),
			TempMornC:   weather.CelsiusFor(d.Temp.Morn),
			TempEve:     weather.RoundTemp(d.Temp.Eve),
			TempEveC:    weather.CelsiusFor(d.Temp.Eve),
			FeelsDay:    weather.RoundTemp(d.FeelsLike.Day),
			FeelsDayC:   weather.CelsiusFor(d.FeelsLike.Day),
			FeelsNight:  weather.RoundTemp(d.FeelsLike.Night),
			FeelsNightC: weather.CelsiusFor(d.FeelsLike.Night),

			Humidity:   d.Humidity,
			Pressure:   d.Pressure,
			WindSpeed:  d.WindSpeed,
			WindGust:   d.WindGust,
			WindDeg:    d.WindDeg,
			CloudCover: d.Clouds,
			UVIndex:    d.UVI,

			Description: de,
			Icon:        ic,

			Pop:  d.Pop,
			Rain: d.Rain,
			Snow: d.Snow,
		})
	}

	alerts := make([]weather.WeatherAdvisory, 0, len(raw.Alerts))
	for _, a := range raw.Alerts {
		tags := a.Tags
		if tags == nil {
			tags = []string{}
		}
		alerts = append(alerts, weather.WeatherAdvisory{
			Sender:      a.SenderName,
			Event:       a.Event,
			Start:       a.Start,
			End:         a.End,
			Description: a.Description,
			Tags:        tags,
		})
	}

	return &weather.Report{
		Current: cur,
		Hourly:  hourly,
		Daily:   daily,
		Alerts:  alerts,
	}
}

func firstCondition(items []oneCallCondition) (string, string) {
	if len(items) == 0 {
		return "", ""
	}
	return items[0].Description, items[0].Icon
}
