package weather

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherdash/weather-gateway/internal/logger"
)

// stubTier is a scriptable tier for resolver tests.
type stubTier struct {
	name   Source
	report *Report
	err    error
	calls  int
}

func (s *stubTier) Name() Source { return s.name }

func (s *stubTier) Fetch(_ context.Context, _ Point, _ Query, _ time.Time) (*Report, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func testLogger() logger.Logger {
	return logger.NewWithWriter("error", io.Discard)
}

func minimalReport() *Report {
	return &Report{
		Current: &CurrentConditions{Temperature: 77, TemperatureC: 25},
		Alerts:  []WeatherAdvisory{},
	}
}

func TestResolverFirstTierWins(t *testing.T) {
	primary := &stubTier{name: SourcePrimary, report: minimalReport()}
	legacy := &stubTier{name: SourceLegacy, report: minimalReport()}

	r := NewResolver([]Tier{primary, legacy}, testLogger(), nil)

	res, err := r.Resolve(context.Background(), Point{Lat: 25.7617, Lon: -80.1918}, QueryCurrent)
	require.NoError(t, err)

	assert.Equal(t, SourcePrimary, res.Source)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, legacy.calls, "later tiers must not be attempted after a success")
}

func TestResolverFallsThroughOnUnavailable(t *testing.T) {
	primary := &stubTier{name: SourcePrimary, err: ErrUnavailable}
	legacy := &stubTier{name: SourceLegacy, report: minimalReport()}

	r := NewResolver([]Tier{primary, legacy}, testLogger(), nil)

	res, err := r.Resolve(context.Background(), Point{}, QueryCurrent)
	require.NoError(t, err)

	assert.Equal(t, SourceLegacy, res.Source)
	assert.Equal(t, 1, primary.calls, "tiers are tried once, never retried")
}

func TestResolverNeverFailsWithAlwaysOnFloor(t *testing.T) {
	primary := &stubTier{name: SourcePrimary, err: ErrUnavailable}
	legacy := &stubTier{name: SourceLegacy, err: ErrUnavailable}
	floor := &stubTier{name: SourceSynthetic, report: minimalReport()}

	r := NewResolver([]Tier{primary, legacy, floor}, testLogger(), nil)

	res, err := r.Resolve(context.Background(), Point{}, QueryDaily)
	require.NoError(t, err)
	assert.Equal(t, SourceSynthetic, res.Source)
}

func TestResolverContractBreachStillAdvances(t *testing.T) {
	primary := &stubTier{name: SourcePrimary, err: errors.New("boom")}
	floor := &stubTier{name: SourceSynthetic, report: minimalReport()}

	r := NewResolver([]Tier{primary, floor}, testLogger(), nil)

	res, err := r.Resolve(context.Background(), Point{}, QueryCurrent)
	require.NoError(t, err)
	assert.Equal(t, SourceSynthetic, res.Source)
}

func TestResolverExhaustedChainErrors(t *testing.T) {
	primary := &stubTier{name: SourcePrimary, err: ErrUnavailable}

	r := NewResolver([]Tier{primary}, testLogger(), nil)

	_, err := r.Resolve(context.Background(), Point{}, QueryCurrent)
	assert.Error(t, err)
}

func TestResolverThreadsAsOf(t *testing.T) {
	asOf := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	var seen time.Time
	capture := tierFunc(func(_ context.Context, _ Point, _ Query, ts time.Time) (*Report, error) {
		seen = ts
		return minimalReport(), nil
	})

	r := NewResolver([]Tier{capture}, testLogger(), func() time.Time { return asOf })

	_, err := r.Resolve(context.Background(), Point{}, QueryCurrent)
	require.NoError(t, err)
	assert.Equal(t, asOf, seen)
}

// tierFunc adapts a function to the Tier interface.
type tierFunc func(context.Context, Point, Query, time.Time) (*Report, error)

func (f tierFunc) Name() Source { return SourceSynthetic }

func (f tierFunc) Fetch(ctx context.Context, pt Point, q Query, ts time.Time) (*Report, error) {
	return f(ctx, pt, q, ts)
}
