package providers

import (
	"context"
	"math"
	"time"

	"github.com/weatherdash/weather-gateway/internal/weather"
)

const (
	syntheticHourlyHorizon = 48
	syntheticDailyHorizon  = 8

	syntheticDescription = "simulated conditions (placeholder data)"
	syntheticSummary     = "simulated forecast (placeholder data)"
	syntheticIcon        = "01d"
)

// SyntheticTier fabricates a fully populated report with no network
// dependency. It is the floor of the fallback chain and can never fail. The
// numbers follow a fixed diurnal pattern seeded from the point and the
// explicit as-of timestamp, so two identical requests produce identical
// payloads; only the schema completeness is a contract, not the values.
type SyntheticTier struct{}

func NewSyntheticTier() *SyntheticTier {
	return &SyntheticTier{}
}

func (t *SyntheticTier) Name() weather.Source {
	return weather.SourceSynthetic
}

func (t *SyntheticTier) Fetch(_ context.Context, pt weather.Point, _ weather.Query, asOf time.Time) (*weather.Report, error) {
	base := asOf.UTC().Truncate(time.Hour)

	cur := syntheticConditions(pt, base)

	hourly := make([]weather.HourlyForecastSample, 0, syntheticHourlyHorizon)
	for i := 0; i < syntheticHourlyHorizon; i++ {
		hourly = append(hourly, syntheticSample(pt, base.Add(time.Duration(i)*time.Hour)))
	}

	daily := make([]weather.DailyForecastSummary, 0, syntheticDailyHorizon)
	day := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < syntheticDailyHorizon; i++ {
		daily = append(daily, syntheticDay(pt, day.AddDate(0, 0, i)))
	}

	return &weather.Report{
		Current: cur,
		Hourly:  hourly,
		Daily:   daily,
		Alerts:  []weather.WeatherAdvisory{},
	}, nil
}

// syntheticTemp is a smooth bounded diurnal curve in Fahrenheit: a latitude
// dependent base, warmest mid-afternoon, coolest before dawn.
func syntheticTemp(pt weather.Point, ts time.Time) float64 {
	base := 75 - math.Abs(pt.Lat)/3
	swing := 10 * math.Sin(float64(ts.Hour()-6)/24*2*math.Pi)
	return base + swing
}

func syntheticConditions(pt weather.Point, ts time.Time) *weather.CurrentConditions {
	temp := syntheticTemp(pt, ts)
	feels := temp - 2
	dew := temp - 15

	sunrise := time.Date(ts.Year(), ts.Month(), ts.Day(), 6, 30, 0, 0, time.UTC)
	sunset := time.Date(ts.Year(), ts.Month(), ts.Day(), 19, 30, 0, 0, time.UTC)

	return &weather.CurrentConditions{
		Point:     pt,
		Timestamp: ts.Unix(),

		Temperature:  weather.RoundTemp(temp),
		TemperatureC: weather.CelsiusFor(temp),
		FeelsLike:    weather.RoundTemp(feels),
		FeelsLikeC:   weather.CelsiusFor(feels),
		DewPoint:     weather.RoundTemp(dew),
		DewPointC:    weather.CelsiusFor(dew),

		Humidity:   60,
		Pressure:   1013,
		WindSpeed:  6.5,
		WindGust:   9.0,
		WindDeg:    180,
		CloudCover: 20,
		Visibility: 10000,
		UVIndex:    5,

		Description: syntheticDescription,
		Icon:        syntheticIcon,

		Sunrise: sunrise.Unix(),
		Sunset:  sunset.Unix(),

		Timezone:  "UTC",
		UTCOffset: 0,
	}
}

func syntheticSample(pt weather.Point, ts time.Time) weather.HourlyForecastSample {
	temp := syntheticTemp(pt, ts)
	feels := temp - 2

	return weather.HourlyForecastSample{
		Timestamp: ts.Unix(),

		Temperature:  weather.RoundTemp(temp),
		TemperatureC: weather.CelsiusFor(temp),
		FeelsLike:    weather.RoundTemp(feels),
		FeelsLikeC:   weather.CelsiusFor(feels),

		Humidity:   60,
		Pressure:   1013,
		WindSpeed:  6.5,
		WindGust:   9.0,
		WindDeg:    180,
		CloudCover: 20,
		Visibility: 10000,
		UVIndex:    5,

		Description: syntheticDescription,
		Icon:        syntheticIcon,

		Pop:  0.1,
		Rain: 0,
		Snow: 0,
	}
}

func syntheticDay(pt weather.Point, day time.Time) weather.DailyForecastSummary {
	noon := day.Add(12 * time.Hour)
	tempDay := syntheticTemp(pt, noon)
	tempMin := tempDay - 12
	tempMax := tempDay + 4
	tempNight := tempDay - 10
	tempMorn := tempDay - 6
	tempEve := tempDay - 3
	feelsDay := tempDay - 2
	feelsNight := tempNight - 2

	sunrise := day.Add(6*time.Hour + 30*time.Minute)
	sunset := day.Add(19*time.Hour + 30*time.Minute)

	return weather.DailyForecastSummary{
		Timestamp: noon.Unix(),
		Sunrise:   sunrise.Unix(),
		Sunset:    sunset.Unix(),
		Moonrise:  sunset.Unix(),
		Moonset:   sunrise.Unix(),
		MoonPhase: 0.5,
		Summary:   syntheticSummary,

		TempDay:     weather.RoundTemp(tempDay),
		TempDayC:    weather.CelsiusFor(tempDay),
		TempMin:     weather.RoundTemp(tempMin),
		TempMinC:    weather.CelsiusFor(tempMin),
		TempMax:     weather.RoundTemp(tempMax),
		TempMaxC:    weather.CelsiusFor(tempMax),
		TempNight:   weather.RoundTemp(tempNight),
		TempNightC:  weather.CelsiusFor(tempNight),
		TempMorn:    weather.RoundTemp(tempMorn),
		TempMornC:   weather.CelsiusFor(tempMorn),
		TempEve:     weather.RoundTemp(tempEve),
		TempEveC:    weather.CelsiusFor(tempEve),
		FeelsDay:    weather.RoundTemp(feelsDay),
		FeelsDayC:   weather.CelsiusFor(feelsDay),
		FeelsNight:  weather.RoundTemp(feelsNight),
		FeelsNightC: weather.CelsiusFor(feelsNight),

		Humidity:   60,
		Pressure:   1013,
		WindSpeed:  6.5,
		WindGust:   9.0,
		WindDeg:    180,
		CloudCover: 20,
		UVIndex:    5,

		Description: syntheticDescription,
		Icon:        syntheticIcon,

		Pop:  0.1,
		Rain: 0,
		Snow: 0,
	}
}
