package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weatherdash/weather-gateway/internal/logger"
)

// Resolver walks an ordered chain of tiers for one point and returns the
// first report that satisfies the query, tagged with the tier that served
// it. Tiers are tried strictly in sequence and never retried or revisited;
// with a synthetic tier at the end of the chain a resolution cannot fail.
type Resolver struct {
	tiers []Tier
	log   logger.Logger
	now   func() time.Time
}

// NewResolver builds a resolver over the given tier chain. nowFn supplies
// the as-of timestamp threaded to the tiers; pass nil for the wall clock.
func NewResolver(tiers []Tier, log logger.Logger, nowFn func() time.Time) *Resolver {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Resolver{
		tiers: tiers,
		log:   log,
		now:   nowFn,
	}
}

// Resolve tries each tier in order and returns the first success. An error
// return means every tier refused, which a correctly configured chain (one
// ending in the synthetic tier) cannot produce; callers may treat it as an
// internal fault.
func (r *Resolver) Resolve(ctx context.Context, pt Point, query Query) (ResolvedWeatherResult, error) {
	asOf := r.now()

	for _, tier := range r.tiers {
		report, err := tier.Fetch(ctx, pt, query, asOf)
		if err == nil {
			return ResolvedWeatherResult{Source: tier.Name(), Report: report}, nil
		}
		if !errors.Is(err, ErrUnavailable) {
			// Tiers contract to return only ErrUnavailable; anything else
			// still advances the chain, but loudly.
			r.log.Errorf("tier %s broke its error contract for (%f, %f): %v", tier.Name(), pt.Lat, pt.Lon, err)
			continue
		}
		r.log.Debugf("tier %s unavailable for (%f, %f), advancing", tier.Name(), pt.Lat, pt.Lon)
	}

	return ResolvedWeatherResult{}, fmt.Errorf("no tier could serve query %q", query)
}
