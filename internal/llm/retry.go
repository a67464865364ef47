package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryingGenerator decorates a TextGenerator with a small fixed number of
// attempts and exponential backoff. Retry is a cross-cutting policy applied
// around the generator, never inside strategy selection.
type RetryingGenerator struct {
	inner       TextGenerator
	maxAttempts int
	baseBackoff time.Duration
}

var _ TextGenerator = (*RetryingGenerator)(nil)

// WithRetry wraps gen with maxAttempts attempts and exponential backoff
// starting at baseBackoff.
func WithRetry(gen TextGenerator, maxAttempts int, baseBackoff time.Duration) *RetryingGenerator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryingGenerator{inner: gen, maxAttempts: maxAttempts, baseBackoff: baseBackoff}
}

// Complete retries transient failures; the last error is returned when all
// attempts fail. Context cancellation cuts the backoff short.
func (r *RetryingGenerator) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	var lastErr error
	backoff := r.baseBackoff

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		text, err := r.inner.Complete(ctx, messages, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt < r.maxAttempts {
			logrus.Warnf("Text generation attempt %d/%d failed, retrying in %v: %v",
				attempt, r.maxAttempts, backoff, err)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff *= 2
		}
	}
	return "", lastErr
}
