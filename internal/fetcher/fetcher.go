package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second

	// MaxRetries for failed requests
	MaxRetries = 3

	// BackoffBase for exponential backoff
	BackoffBase = time.Second

	// MaxBodyBytes caps how much of a response is read
	MaxBodyBytes = 10 << 20
)

// Page is a fetched document
type Page struct {
	URL         string
	ContentType string
	Body        []byte
}

// Fetcher handles HTTP requests with rate limiting and retries
type Fetcher struct {
	client      *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	backoffBase time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	logger      *slog.Logger
}

// New creates a Fetcher. requestsPerSecond of 0 disables rate limiting.
func New(requestsPerSecond float64, userAgent string, logger *slog.Logger) *Fetcher {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), int(requestsPerSecond)+1)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		rateLimiter: limiter,
		userAgent:   userAgent,
		backoffBase: BackoffBase,
		sleep:       sleepContext,
		logger:      logger,
	}
}

// Fetch downloads url, retrying server errors with exponential backoff.
// Client errors (4xx) are returned without retrying.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Page, error) {
	var lastErr error

	for attempt := 0; attempt < MaxRetries; attempt++ {
		if err := f.rateLimiter.Wait(ctx); err != nil {
			return Page{}, fmt.Errorf("rate limiter error: %w", err)
		}

		if attempt > 0 {
			f.logger.Debug("Retrying fetch", "url", url, "attempt", attempt+1, "max", MaxRetries)
		}

		page, retry, err := f.fetchOnce(ctx, url)
		if err == nil {
			f.logger.Debug("Fetched page", "url", url, "content_type", page.ContentType, "bytes", len(page.Body))
			return page, nil
		}
		if !retry {
			return Page{}, err
		}

		lastErr = err
		if attempt == MaxRetries-1 {
			break
		}
		if err := f.backoff(ctx, attempt); err != nil {
			return Page{}, err
		}
	}

	return Page{}, fmt.Errorf("failed after %d attempts: %w", MaxRetries, lastErr)
}

// fetchOnce performs a single request and reports whether a failure is worth retrying
func (f *Fetcher) fetchOnce(ctx context.Context, url string) (Page, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Page{}, false, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, true, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		return Page{}, resp.StatusCode >= 500, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return Page{}, true, fmt.Errorf("reading response body: %w", err)
	}

	return Page{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, false, nil
}

// backoff waits with exponential growth, capped at 30 seconds
func (f *Fetcher) backoff(ctx context.Context, attempt int) error {
	wait := f.backoffBase * time.Duration(1<<uint(attempt))
	if wait > 30*time.Second {
		wait = 30 * time.Second
	}

	f.logger.Debug("Backing off", "wait", wait)

	return f.sleep(ctx, wait)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
