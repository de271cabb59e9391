package weather

// Source identifies the upstream tier that served a result. It is attached to
// every resolved payload for observability; nothing downstream branches on it.
type Source string

const (
	SourcePrimary   Source = "openweather"
	SourceLegacy    Source = "openweather-legacy"
	SourceSynthetic Source = "mock"
)

// Point is a single geographic query target.
type Point struct {
	Name    string  `json:"name,omitempty"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentConditions is the normalized current-weather view for one point.
// Temperatures carry the primary (Fahrenheit) value and the Celsius value
// derived from it at normalization time; the Celsius figure is never supplied
// by an upstream directly.
type CurrentConditions struct {
	Point

	Timestamp int64 `json:"dt"`

	Temperature  int `json:"temperature"`
	TemperatureC int `json:"temperatureCelsius"`
	FeelsLike    int `json:"feelsLike"`
	FeelsLikeC   int `json:"feelsLikeCelsius"`
	DewPoint     int `json:"dewPoint"`
	DewPointC    int `json:"dewPointCelsius"`

	Humidity   int     `json:"humidity"`
	Pressure   int     `json:"pressure"`
	WindSpeed  float64 `json:"windSpeed"`
	WindGust   float64 `json:"windGust,omitempty"`
	WindDeg    int     `json:"windDeg"`
	CloudCover int     `json:"clouds"`
	Visibility int     `json:"visibility"`
	UVIndex    float64 `json:"uvi"`

	Description string `json:"description"`
	Icon        string `json:"icon"`

	Sunrise int64 `json:"sunrise"`
	Sunset  int64 `json:"sunset"`

	Timezone  string `json:"timezone"`
	UTCOffset int    `json:"timezoneOffset"`
}

// HourlyForecastSample is one upstream-supplied forecast slot. The primary
// tier produces one per hour, the legacy tier one per three hours.
type HourlyForecastSample struct {
	Timestamp int64 `json:"dt"`

	Temperature  int `json:"temperature"`
	TemperatureC int `json:"temperatureCelsius"`
	FeelsLike    int `json:"feelsLike"`
	FeelsLikeC   int `json:"feelsLikeCelsius"`

	Humidity   int     `json:"humidity"`
	Pressure   int     `json:"pressure"`
	WindSpeed  float64 `json:"windSpeed"`
	WindGust   float64 `json:"windGust,omitempty"`
	WindDeg    int     `json:"windDeg"`
	CloudCover int     `json:"clouds"`
	Visibility int     `json:"visibility"`
	UVIndex    float64 `json:"uvi"`

	Description string `json:"description"`
	Icon        string `json:"icon"`

	// Probability of precipitation for the slot, 0..1.
	Pop float64 `json:"pop"`

	// Incremental precipitation volumes for the slot, in mm. The daily
	// bucketer sums these per calendar day.
	Rain float64 `json:"rain,omitempty"`
	Snow float64 `json:"snow,omitempty"`
}

// DailyForecastSummary is one calendar day of forecast, either supplied
// directly by the primary tier or derived from three-hour samples by the
// daily bucketer.
type DailyForecastSummary struct {
	Timestamp int64 `json:"dt"`

	Sunrise int64 `json:"sunrise"`
	Sunset  int64 `json:"sunset"`

	// Moon data and the textual summary come from the primary tier only.
	Moonrise  int64   `json:"moonrise,omitempty"`
	Moonset   int64   `json:"moonset,omitempty"`
	MoonPhase float64 `json:"moonPhase,omitempty"`
	Summary   string  `json:"summary,omitempty"`

	TempDay     int `json:"tempDay"`
	TempDayC    int `json:"tempDayCelsius"`
	TempMin     int `json:"tempMin"`
	TempMinC    int `json:"tempMinCelsius"`
	TempMax     int `json:"tempMax"`
	TempMaxC    int `json:"tempMaxCelsius"`
	TempNight   int `json:"tempNight"`
	TempNightC  int `json:"tempNightCelsius"`
	TempMorn    int `json:"tempMorn"`
	TempMornC   int `json:"tempMornCelsius"`
	TempEve     int `json:"tempEve"`
	TempEveC    int `json:"tempEveCelsius"`
	FeelsDay    int `json:"feelsLikeDay"`
	FeelsDayC   int `json:"feelsLikeDayCelsius"`
	FeelsNight  int `json:"feelsLikeNight"`
	FeelsNightC int `json:"feelsLikeNightCelsius"`

	Humidity   int     `json:"humidity"`
	Pressure   int     `json:"pressure"`
	WindSpeed  float64 `json:"windSpeed"`
	WindGust   float64 `json:"windGust,omitempty"`
	WindDeg    int     `json:"windDeg"`
	CloudCover int     `json:"clouds"`
	UVIndex    float64 `json:"uvi"`

	Description string `json:"description"`
	Icon        string `json:"icon"`

	Pop  float64 `json:"pop"`
	Rain float64 `json:"rain,omitempty"`
	Snow float64 `json:"snow,omitempty"`
}

// WeatherAdvisory is a weather alert issued by an authority. Only the primary
// tier supplies advisories; every other tier yields an empty list.
type WeatherAdvisory struct {
	Sender      string   `json:"senderName"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Report bundles the normalized sections a tier can serve for one point.
// Sections a tier does not populate for the requested query are left nil;
// alerts are empty but non-nil when a tier answered and simply has none.
type Report struct {
	Current *CurrentConditions     `json:"current,omitempty"`
	Hourly  []HourlyForecastSample `json:"hourly,omitempty"`
	Daily   []DailyForecastSummary `json:"daily,omitempty"`
	Alerts  []WeatherAdvisory      `json:"alerts,omitempty"`
}

// ResolvedWeatherResult pairs a report with the tier that produced it.
type ResolvedWeatherResult struct {
	Source Source  `json:"source"`
	Report *Report `json:"data"`
}
