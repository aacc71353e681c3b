package library

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// FetchOptions configures the published-CSV fetcher.
type FetchOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	// RPS throttles outbound requests; published sheet endpoints are
	// shared infrastructure.
	RPS float64
}

// Fetcher downloads published CSV tables with retry and rate limiting.
type Fetcher struct {
	client  *http.Client
	opts    FetchOptions
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts FetchOptions) *Fetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "lead-enricher/1.0"
	}
	if opts.RPS == 0 {
		opts.RPS = 2
	}
	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.RPS), max(int(opts.RPS), 1)),
	}
}

// Fetch downloads the URL body, retrying server errors and 429s with
// exponential backoff.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "library: create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	var lastErr error
	for attempt := range f.opts.MaxRetries {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "library: rate limiter wait")
		}

		resp, err := f.client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			zap.L().Warn("library fetch failed, retrying",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("library: http %d from %s", resp.StatusCode, rawURL)
			zap.L().Warn("library fetch got retryable status",
				zap.String("url", rawURL),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, eris.Errorf("library: unexpected status %d from %s", resp.StatusCode, rawURL)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, eris.Wrapf(err, "library: read body from %s", rawURL)
		}
		return body, nil
	}

	return nil, eris.Wrap(lastErr, "library: all retries exhausted")
}

func (f *Fetcher) backoff(ctx context.Context, attempt int) {
	base := time.Second
	maxBackoff := 30 * time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
