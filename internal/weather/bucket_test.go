package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeHourRun builds n samples at three-hour steps starting from start,
// with temperatures cycling through temps.
func threeHourRun(start time.Time, n int, temps []int) []HourlyForecastSample {
	samples := make([]HourlyForecastSample, 0, n)
	for i := 0; i < n; i++ {
		temp := temps[i%len(temps)]
		samples = append(samples, HourlyForecastSample{
			Timestamp:    start.Add(time.Duration(i) * 3 * time.Hour).Unix(),
			Temperature:  temp,
			TemperatureC: ToCelsius(float64(temp)),
			FeelsLike:    temp - 2,
			FeelsLikeC:   ToCelsius(float64(temp - 2)),
			Humidity:     50 + i,
			Pressure:     1010 + i,
			WindSpeed:    float64(i),
			Pop:          float64(i%4) * 0.2,
			Rain:         0.5,
		})
	}
	return samples
}

func TestBucketDailyPartition(t *testing.T) {
	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	// 16 three-hour slots covering exactly two calendar days.
	samples := threeHourRun(start, 16, []int{70, 72, 75, 80, 82, 79, 74, 71})

	daily := BucketDaily(samples, 0, DefaultBucketConfig())
	require.Len(t, daily, 2)

	// Day anchors are local midnights a day apart, ascending.
	assert.Equal(t, start.Unix(), daily[0].Timestamp)
	assert.Equal(t, start.AddDate(0, 0, 1).Unix(), daily[1].Timestamp)
}

func TestBucketDailyOnePerDistinctDate(t *testing.T) {
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	for _, n := range []int{1, 5, 8, 16, 40} {
		samples := threeHourRun(start, n, []int{68, 73, 77})
		daily := BucketDaily(samples, 0, DefaultBucketConfig())

		dates := make(map[string]struct{})
		for _, s := range samples {
			dates[time.Unix(s.Timestamp, 0).UTC().Format("2006-01-02")] = struct{}{}
		}
		assert.Len(t, daily, len(dates), "n=%d", n)
	}
}

func TestBucketDailyTemperatureBounds(t *testing.T) {
	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	samples := threeHourRun(start, 16, []int{70, 72, 75, 80, 82, 79, 74, 71})

	daily := BucketDaily(samples, 0, DefaultBucketConfig())
	require.NotEmpty(t, daily)

	for _, d := range daily {
		assert.LessOrEqual(t, d.TempMin, d.TempDay)
		assert.LessOrEqual(t, d.TempDay, d.TempMax)
	}
	for _, s := range samples {
		day := time.Unix(s.Timestamp, 0).UTC().Format("2006-01-02")
		for _, d := range daily {
			if time.Unix(d.Timestamp, 0).UTC().Format("2006-01-02") == day {
				assert.GreaterOrEqual(t, s.Temperature, d.TempMin)
				assert.LessOrEqual(t, s.Temperature, d.TempMax)
			}
		}
	}
}

func TestBucketDailyReferenceHours(t *testing.T) {
	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	// Hours 0,3,6,9,12,15,18,21: every reference hour is present.
	samples := threeHourRun(start, 8, []int{60, 62, 64, 66, 70, 72, 68, 63})

	daily := BucketDaily(samples, 0, DefaultBucketConfig())
	require.Len(t, daily, 1)
	d := daily[0]

	assert.Equal(t, 66, d.TempMorn)  // 09:00 sample
	assert.Equal(t, 68, d.TempEve)   // 18:00 sample
	assert.Equal(t, 63, d.TempNight) // 21:00 sample

	// Noon sample carries feels-like and the representative fields.
	assert.Equal(t, 70-2, d.FeelsDay)
	assert.Equal(t, 50+4, d.Humidity)
	assert.Equal(t, 1010+4, d.Pressure)
}

func TestBucketDailyReferenceFallbacks(t *testing.T) {
	// A single early-morning sample: no 09/12/18/21 hour in the group.
	start := time.Date(2026, 8, 30, 2, 0, 0, 0, time.UTC)
	samples := []HourlyForecastSample{{
		Timestamp:   start.Unix(),
		Temperature: 50,
		FeelsLike:   47,
	}}

	cfg := DefaultBucketConfig()
	daily := BucketDaily(samples, 0, cfg)
	require.Len(t, daily, 1)
	d := daily[0]

	assert.Equal(t, 50, d.TempDay)
	assert.Equal(t, 50, d.TempMorn)
	assert.Equal(t, 50, d.TempEve)
	assert.Equal(t, 50-cfg.NightCooling, d.TempNight)
	assert.Equal(t, 47, d.FeelsDay) // first sample stands in for noon
	assert.Equal(t, 47-cfg.NightCooling, d.FeelsNight)
}

func TestBucketDailyPopAndPrecip(t *testing.T) {
	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	samples := threeHourRun(start, 8, []int{70})

	daily := BucketDaily(samples, 0, DefaultBucketConfig())
	require.Len(t, daily, 1)

	// Pop is the worst case in the group, rain the sum of increments.
	assert.InDelta(t, 0.6, daily[0].Pop, 1e-9)
	assert.InDelta(t, 8*0.5, daily[0].Rain, 1e-9)
}

func TestBucketDailyUsesLocalOffset(t *testing.T) {
	// 22:00 and 23:00 UTC land on the next local date at UTC+3.
	base := time.Date(2026, 8, 30, 22, 0, 0, 0, time.UTC)
	samples := []HourlyForecastSample{
		{Timestamp: base.Unix(), Temperature: 60},
		{Timestamp: base.Add(time.Hour).Unix(), Temperature: 61},
	}

	utcDaily := BucketDaily(samples, 0, DefaultBucketConfig())
	require.Len(t, utcDaily, 1)

	shifted := BucketDaily(samples, 3*60*60, DefaultBucketConfig())
	require.Len(t, shifted, 1)
	assert.NotEqual(t, utcDaily[0].Timestamp, shifted[0].Timestamp)
}

func TestBucketDailyEmptyInput(t *testing.T) {
	assert.Nil(t, BucketDaily(nil, 0, DefaultBucketConfig()))
}

func TestBucketDailyCelsiusPairing(t *testing.T) {
	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	samples := threeHourRun(start, 8, []int{70, 72, 75, 80})

	daily := BucketDaily(samples, 0, DefaultBucketConfig())
	require.Len(t, daily, 1)
	d := daily[0]

	assert.Equal(t, ToCelsius(float64(d.TempDay)), d.TempDayC)
	assert.Equal(t, ToCelsius(float64(d.TempMin)), d.TempMinC)
	assert.Equal(t, ToCelsius(float64(d.TempMax)), d.TempMaxC)
	assert.Equal(t, ToCelsius(float64(d.TempNight)), d.TempNightC)
	assert.Equal(t, ToCelsius(float64(d.FeelsDay)), d.FeelsDayC)
}
