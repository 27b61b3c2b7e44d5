package util

import (
	"context"
	stderrors "errors"
	"math"
	"time"

	"github.com/sanremolab/sanremo-pulse-go/pkg/errors"
)

// RetryPolicy is a reusable retry schedule: a bounded number of attempts with
// exponential delays and a predicate deciding which HTTP statuses are worth
// retrying. Schema errors are never retried regardless of the predicate.
type RetryPolicy struct {
	MaxAttempts     int
	BaseDelay       time.Duration
	Multiplier      float64
	RetryableStatus func(status int) bool

	// Sleep is substituted in tests. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// DefaultRetryableStatus retries rate limits and server errors.
func DefaultRetryableStatus(status int) bool {
	return status == 429 || status >= 500
}

func (p RetryPolicy) Delay(attempt int) time.Duration {
	multiplier := p.Multiplier
	if multiplier <= 0 {
		multiplier = 2
	}
	return time.Duration(float64(p.BaseDelay) * math.Pow(multiplier, float64(attempt)))
}

func (p RetryPolicy) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Do runs op up to MaxAttempts times, sleeping between attempts. It returns
// nil on the first success, the last error otherwise. Non-retryable errors
// short-circuit immediately.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.sleep(p.Delay(attempt - 1))
		}

		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if !p.retryable(err) {
			return err
		}
	}

	return lastErr
}

func (p RetryPolicy) retryable(err error) bool {
	if errors.IsSchemaError(err) {
		return false
	}
	if p.RetryableStatus == nil {
		return true
	}

	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		return p.RetryableStatus(apiErr.StatusCode)
	}

	// Plain transport errors carry no status; treat them as transient.
	return true
}
