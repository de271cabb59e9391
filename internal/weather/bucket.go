package weather

import (
	"math"
	"sort"
	"time"
)

// BucketConfig holds the reference hours the daily bucketer uses when picking
// representative samples out of a day group. The values mirror common daypart
// boundaries but are approximations, so they stay configurable rather than
// hard-coded.
type BucketConfig struct {
	MorningHour int
	NoonHour    int
	EveningHour int
	NightHour   int

	// NightCooling is subtracted from the day temperature when a group has
	// no sample at NightHour.
	NightCooling int
}

// DefaultBucketConfig returns the reference hours used when the config does
// not override them.
func DefaultBucketConfig() BucketConfig {
	return BucketConfig{
		MorningHour:  9,
		NoonHour:     12,
		EveningHour:  18,
		NightHour:    21,
		NightCooling: 10,
	}
}

// BucketDaily groups short-interval forecast samples into per-calendar-day
// summaries. Dates are taken in the point's local zone, built from the
// provider-reported UTC offset (callers pass 0 when the upstream did not
// report one, which keeps the grouping in UTC).
//
// Every input sample lands in exactly one day group; the output holds one
// summary per distinct local date, ordered by date ascending.
func BucketDaily(samples []HourlyForecastSample, utcOffsetSeconds int, cfg BucketConfig) []DailyForecastSummary {
	if len(samples) == 0 {
		return nil
	}

	loc := time.FixedZone("local", utcOffsetSeconds)

	groups := make(map[string][]HourlyForecastSample)
	anchors := make(map[string]int64)

	for _, s := range samples {
		ts := time.Unix(s.Timestamp, 0).In(loc)
		key := ts.Format("2006-01-02")
		groups[key] = append(groups[key], s)
		if _, ok := anchors[key]; !ok {
			midnight := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc)
			anchors[key] = midnight.Unix()
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]DailyForecastSummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, summarizeDay(groups[k], anchors[k], loc, cfg))
	}
	return out
}

func summarizeDay(group []HourlyForecastSample, anchor int64, loc *time.Location, cfg BucketConfig) DailyForecastSummary {
	var (
		sum      int
		tempMin  = math.MaxInt
		tempMax  = math.MinInt
		popMax   float64
		rainSum  float64
		snowSum  float64
		byHour   = make(map[int]HourlyForecastSample)
	)

	for _, s := range group {
		sum += s.Temperature
		if s.Temperature < tempMin {
			tempMin = s.Temperature
		}
		if s.Temperature > tempMax {
			tempMax = s.Temperature
		}
		if s.Pop > popMax {
			popMax = s.Pop
		}
		rainSum += s.Rain
		snowSum += s.Snow

		hour := time.Unix(s.Timestamp, 0).In(loc).Hour()
		if _, ok := byHour[hour]; !ok {
			byHour[hour] = s
		}
	}

	tempDay := RoundTemp(float64(sum) / float64(len(group)))

	tempMorn := tempDay
	if s, ok := byHour[cfg.MorningHour]; ok {
		tempMorn = s.Temperature
	}
	tempEve := tempDay
	if s, ok := byHour[cfg.EveningHour]; ok {
		tempEve = s.Temperature
	}

	// The noon sample stands in for the whole day: feels-like plus the
	// representative humidity/pressure/wind/description fields come from it.
	noon, ok := byHour[cfg.NoonHour]
	if !ok {
		noon = group[0]
	}

	feelsDay := noon.FeelsLike

	tempNight := tempDay - cfg.NightCooling
	feelsNight := feelsDay - cfg.NightCooling
	if s, ok := byHour[cfg.NightHour]; ok {
		tempNight = s.Temperature
		feelsNight = s.FeelsLike
	}

	return DailyForecastSummary{
		Timestamp: anchor,

		TempDay:     tempDay,
		TempDayC:    ToCelsius(float64(tempDay)),
		TempMin:     tempMin,
		TempMinC:    ToCelsius(float64(tempMin)),
		TempMax:     tempMax,
		TempMaxC:    ToCelsius(float64(tempMax)),
		TempNight:   tempNight,
		TempNightC:  ToCelsius(float64(tempNight)),
		TempMorn:    tempMorn,
		TempMornC:   ToCelsius(float64(tempMorn)),
		TempEve:     tempEve,
		TempEveC:    ToCelsius(float64(tempEve)),
		FeelsDay:    feelsDay,
		FeelsDayC:   ToCelsius(float64(feelsDay)),
		FeelsNight:  feelsNight,
		FeelsNightC: ToCelsius(float64(feelsNight)),

		Humidity:   noon.Humidity,
		Pressure:   noon.Pressure,
		WindSpeed:  noon.WindSpeed,
		WindGust:   noon.WindGust,
		WindDeg:    noon.WindDeg,
		CloudCover: noon.CloudCover,
		UVIndex:    noon.UVIndex,

		Description: noon.Description,
		Icon:        noon.Icon,

		Pop:  popMax,
		Rain: rainSum,
		Snow: snowSum,
	}
}
