package weather

import (
	"context"
	"sync"
)

// ResolvePanel resolves a fixed set of points concurrently and returns one
// result per point in input order, regardless of which tier answered or how
// long each resolution took. Each point gets an independent resolver pass;
// one point falling through its whole chain never blocks a sibling.
//
// maxConcurrency bounds the number of in-flight resolutions so a large panel
// cannot stampede the upstreams; values below one are treated as one.
func (r *Resolver) ResolvePanel(ctx context.Context, points []Point, query Query, maxConcurrency int) ([]ResolvedWeatherResult, error) {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	results := make([]ResolvedWeatherResult, len(points))
	errs := make([]error, len(points))
	sem := make(chan struct{}, maxConcurrency)

	var wg sync.WaitGroup
	for i, pt := range points {
		i, pt := i, pt
		wg.Add(1)
		go func() {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			// Each goroutine writes only its own index; no shared state.
			results[i], errs[i] = r.Resolve(ctx, pt, query)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
