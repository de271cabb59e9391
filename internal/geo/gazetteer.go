package geo

import (
	"sort"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/weatherdash/weather-gateway/internal/logger"
	"github.com/weatherdash/weather-gateway/internal/weather"
)

// DefaultPoint is where a request lands when neither coordinates nor a
// recognizable place name were supplied.
var DefaultPoint = weather.Point{
	Name:    "Miami",
	Region:  "Florida",
	Country: "US",
	Lat:     25.7617,
	Lon:     -80.1918,
}

// builtinPlaces is the static gazetteer backing name lookups and the
// search/states/cities helpers.
var builtinPlaces = []weather.Point{
	{Name: "Miami", Region: "Florida", Country: "US", Lat: 25.7617, Lon: -80.1918},
	{Name: "Orlando", Region: "Florida", Country: "US", Lat: 28.5384, Lon: -81.3789},
	{Name: "Tampa", Region: "Florida", Country: "US", Lat: 27.9506, Lon: -82.4572},
	{Name: "Jacksonville", Region: "Florida", Country: "US", Lat: 30.3322, Lon: -81.6557},
	{Name: "New York", Region: "New York", Country: "US", Lat: 40.7128, Lon: -74.0060},
	{Name: "Buffalo", Region: "New York", Country: "US", Lat: 42.8864, Lon: -78.8784},
	{Name: "Los Angeles", Region: "California", Country: "US", Lat: 34.0522, Lon: -118.2437},
	{Name: "San Francisco", Region: "California", Country: "US", Lat: 37.7749, Lon: -122.4194},
	{Name: "San Diego", Region: "California", Country: "US", Lat: 32.7157, Lon: -117.1611},
	{Name: "Chicago", Region: "Illinois", Country: "US", Lat: 41.8781, Lon: -87.6298},
	{Name: "Houston", Region: "Texas", Country: "US", Lat: 29.7604, Lon: -95.3698},
	{Name: "Dallas", Region: "Texas", Country: "US", Lat: 32.7767, Lon: -96.7970},
	{Name: "Austin", Region: "Texas", Country: "US", Lat: 30.2672, Lon: -97.7431},
	{Name: "Seattle", Region: "Washington", Country: "US", Lat: 47.6062, Lon: -122.3321},
	{Name: "Denver", Region: "Colorado", Country: "US", Lat: 39.7392, Lon: -104.9903},
	{Name: "Boston", Region: "Massachusetts", Country: "US", Lat: 42.3601, Lon: -71.0589},
	{Name: "Atlanta", Region: "Georgia", Country: "US", Lat: 33.7490, Lon: -84.3880},
	{Name: "Phoenix", Region: "Arizona", Country: "US", Lat: 33.4484, Lon: -112.0740},
	{Name: "Portland", Region: "Oregon", Country: "US", Lat: 45.5152, Lon: -122.6784},
	{Name: "New Orleans", Region: "Louisiana", Country: "US", Lat: 29.9511, Lon: -90.0715},
}

// Gazetteer resolves place names to points. Lookups hit the built-in table
// first; when a Google geocoding key is configured, unknown names fall back
// to the remote geocoder before giving up.
type Gazetteer struct {
	geocoderKey string
	log         logger.Logger
}

func NewGazetteer(geocoderKey string, log logger.Logger) *Gazetteer {
	if geocoderKey != "" {
		geocoder.ApiKey = geocoderKey
	}
	return &Gazetteer{
		geocoderKey: geocoderKey,
		log:         log.WithField("component", "gazetteer"),
	}
}

// Resolve maps a place name to a point. The second return reports whether
// the name was recognized; callers fall back to DefaultPoint when it is
// false.
func (g *Gazetteer) Resolve(name string) (weather.Point, bool) {
	if name == "" {
		return weather.Point{}, false
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	for _, p := range builtinPlaces {
		if strings.ToLower(p.Name) == needle {
			return p, true
		}
	}

	if g.geocoderKey == "" {
		return weather.Point{}, false
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: name})
	if err != nil {
		g.log.Warnf("remote geocoding failed for %q: %v", name, err)
		return weather.Point{}, false
	}

	return weather.Point{
		Name: name,
		Lat:  loc.Latitude,
		Lon:  loc.Longitude,
	}, true
}

// Search returns the gazetteer entries whose name contains the query,
// case-insensitively. An empty query returns every entry.
func (g *Gazetteer) Search(query string) []weather.Point {
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]weather.Point, 0, len(builtinPlaces))
	for _, p := range builtinPlaces {
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// States lists the distinct administrative regions in the gazetteer, sorted.
func (g *Gazetteer) States() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range builtinPlaces {
		if _, ok := seen[p.Region]; ok {
			continue
		}
		seen[p.Region] = struct{}{}
		out = append(out, p.Region)
	}
	sort.Strings(out)
	return out
}

// Cities lists the gazetteer entries for a region; an empty region lists all.
func (g *Gazetteer) Cities(region string) []weather.Point {
	needle := strings.ToLower(strings.TrimSpace(region))

	out := make([]weather.Point, 0, len(builtinPlaces))
	for _, p := range builtinPlaces {
		if needle == "" || strings.ToLower(p.Region) == needle {
			out = append(out, p)
		}
	}
	return out
}
