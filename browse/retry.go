package browse

import (
	"context"
	"time"
)

// CaptureFunc is the signature for a screenshot capture attempt.
type CaptureFunc func(ctx context.Context, url string) ([]byte, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for capture retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// CaptureWithRetry attempts a capture with exponential backoff, up to
// 3 retries (4 total attempts) with delays of 1s, 2s, 4s. The logger
// function, if provided, is called for each retry attempt.
func CaptureWithRetry(ctx context.Context, url string, capture CaptureFunc, logger LogFunc) ([]byte, error) {
	return CaptureWithRetryDelays(ctx, url, capture, logger, DefaultRetryDelays())
}

// CaptureWithRetryDelays is like CaptureWithRetry but allows
// configurable delays. This is useful for testing without waiting for
// real delays.
func CaptureWithRetryDelays(ctx context.Context, url string, capture CaptureFunc, logger LogFunc, delays []time.Duration) ([]byte, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		data, err := capture(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
