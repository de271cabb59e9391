package weather

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is the only error a tier may return. Transport failures,
// upstream rejections, decode failures and a missing credential all collapse
// to it at the client boundary; the resolver reads it as "advance to the next
// tier".
var ErrUnavailable = errors.New("tier unavailable")

// Query selects which report sections a request needs.
type Query string

const (
	QueryCurrent Query = "current"
	QueryOneCall Query = "onecall"
	QueryHourly  Query = "hourly"
	QueryDaily   Query = "daily"
	QueryAlerts  Query = "alerts"
)

// NeedsForecast reports whether the query depends on forecast data, i.e.
// whether a tier that serves forecasts from a separate upstream call must
// make that call. Current conditions and advisories are answerable without
// one: a tier without advisory support yields its constant empty list.
func (q Query) NeedsForecast() bool {
	return q != QueryCurrent && q != QueryAlerts
}

// Tier is one upstream data source plus its normalizer. Fetch returns a fully
// normalized report for the requested query, or ErrUnavailable; it never
// panics past its boundary and never returns a raw transport error.
//
// asOf is the request timestamp. Network tiers ignore it; the synthetic tier
// derives its entire report from it so that results are deterministic under
// test.
type Tier interface {
	Name() Source
	Fetch(ctx context.Context, pt Point, query Query, asOf time.Time) (*Report, error)
}
