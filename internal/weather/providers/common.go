package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

var (
	errUpstreamStatus = errors.New("unexpected status code")
	errCircuitOpen    = errors.New("circuit breaker open")
	errNoHTTPClient   = errors.New("http client not configured")
)

// upstreamClient bundles the pieces every network tier shares: the HTTP
// client, a circuit breaker guarding the upstream, and a limiter protecting
// it from burst load. There is deliberately no retry loop here; a failed
// attempt surfaces immediately so the resolver can fall through to the next
// tier.
type upstreamClient struct {
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

func newUpstreamClient(client *http.Client, name string, rps float64, burst int) *upstreamClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
	})

	return &upstreamClient{
		client:  client,
		circuit: cb,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// getJSON issues one GET and decodes the 2xx body into out. Any failure mode
// (transport, status, decode) comes back as an error for the caller to fold
// into its unavailability signal.
func (u *upstreamClient) getJSON(ctx context.Context, url string, out any) error {
	if u.client == nil {
		return errNoHTTPClient
	}

	if err := u.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	result, err := u.circuit.Execute(func() (interface{}, error) {
		resp, execErr := u.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errUpstreamStatus, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
