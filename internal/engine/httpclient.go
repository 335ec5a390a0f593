package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// Per-host rate limiters for external profile APIs. GitHub unauthenticated
// allows 60 req/h; the limiter keeps bursts polite rather than enforcing
// the exact quota.
var (
	limitersMu sync.Mutex
	limiters   = map[string]*rate.Limiter{}
)

// hostLimiter returns the shared limiter for a host, creating it on first use.
func hostLimiter(host string) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()
	l, ok := limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(2), 5) // 2 req/s, burst 5
		limiters[host] = l
	}
	return l
}

// GetJSON performs a rate-limited, retried GET against an external API and
// decodes the JSON response into dst. Extra headers (auth tokens) are applied
// on top of the standard Accept/User-Agent pair.
func GetJSON(ctx context.Context, rawURL string, headers map[string]string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgentBot)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if err := hostLimiter(req.URL.Host).Wait(ctx); err != nil {
		return err
	}

	IncrFetchRequests()
	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		IncrFetchErrors()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		IncrFetchErrors()
		return fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
