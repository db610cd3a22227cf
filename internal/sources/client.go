package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"jobhound-ingest/internal/config"
)

// FetchClient is the HTTP client shared by all adapters: fixed request
// timeout, descriptive client identity and a rate limiter so concurrent
// adapters stay polite to the upstream endpoints.
type FetchClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// NewFetchClient creates a fetch client from the sources configuration
func NewFetchClient(cfg *config.Config) *FetchClient {
	perSecond := rate.Limit(float64(cfg.Sources.RateLimit) / 60.0)
	if cfg.Sources.RateLimit <= 0 {
		perSecond = rate.Inf
	}

	return &FetchClient{
		httpClient: &http.Client{Timeout: cfg.Sources.RequestTimeout},
		limiter:    rate.NewLimiter(perSecond, 1),
		userAgent:  cfg.Sources.UserAgent,
	}
}

// Get performs a rate-limited GET, applying extra headers on top of the
// client identity. Non-2xx responses surface as ErrSourceUnavailable.
func (c *FetchClient) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		if k == "Host" {
			req.Host = v
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrSourceUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	return body, nil
}
