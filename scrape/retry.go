package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitekit"
)

// DefaultRetryDelays returns the backoff delays used when retries are
// enabled: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry fetches url, retrying after each of delays. Pages that do
// not exist (ENOTFOUND) are not retried. No delays means a single attempt.
func fetchWithRetry(ctx context.Context, fetcher sitekit.Fetcher, url string, delays []time.Duration, logger *slog.Logger) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(delays) || sitekit.ErrorCode(err) == sitekit.ENOTFOUND {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		logger.Debug("retrying fetch", "url", url, "attempt", attempt+2, "error", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}
