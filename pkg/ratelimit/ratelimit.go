package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Registry hands out one token bucket per key (usually a remote host).
// Idle limiters are evicted after ten minutes.
type Registry struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// NewRegistry creates a registry allowing requestsPerSecond per key.
// A value <= 0 disables throttling.
func NewRegistry(requestsPerSecond float64) *Registry {
	r := rate.Inf
	burst := 1
	if requestsPerSecond > 0 {
		r = rate.Limit(requestsPerSecond)
		if requestsPerSecond > 1 {
			burst = int(requestsPerSecond)
		}
	}

	return &Registry{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			64,             // remote hosts, not clients
			nil,            // No eviction callback
			time.Minute*10, // TTL
		),
		rate:  r,
		burst: burst,
	}
}

// Wait blocks until a request for key may proceed or ctx is done.
func (r *Registry) Wait(ctx context.Context, key string) error {
	limiter, ok := r.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(r.rate, r.burst)
		r.limiters.Add(key, limiter)
	}

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", key, err)
	}
	return nil
}

// Transport wraps base so every outgoing request waits on the registry,
// keyed by request host.
func (r *Registry) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{registry: r, base: base}
}

type transport struct {
	registry *Registry
	base     http.RoundTripper
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.registry.Wait(req.Context(), req.URL.Host); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
