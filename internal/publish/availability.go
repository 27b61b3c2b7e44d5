package publish

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
)

// AvailabilityWaiter polls a raw URL until the pushed file is actually
// served. The raw-content CDN can lag the push by a while.
type AvailabilityWaiter struct {
	httpClient *http.Client
	attempts   int
	delay      time.Duration
	logger     *zap.Logger

	// sleep is substituted in tests.
	sleep func(time.Duration)
}

func NewAvailabilityWaiter(httpClient *http.Client, logger *zap.Logger) *AvailabilityWaiter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &AvailabilityWaiter{
		httpClient: httpClient,
		attempts:   constants.PublishConfig.AvailabilityAttempts,
		delay:      constants.PublishConfig.AvailabilityDelay,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Wait returns nil once the URL answers 200, or an error after the attempt
// budget is exhausted.
func (w *AvailabilityWaiter) Wait(ctx context.Context, fileURL string) error {
	w.logger.Info("Waiting for file availability", zap.String("url", fileURL))

	for attempt := 1; attempt <= w.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
		if err != nil {
			return err
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			w.logger.Warn("Availability check failed",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", w.attempts),
				zap.Error(err),
			)
		} else {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				w.logger.Info("File is accessible", zap.Int("attempt", attempt))
				return nil
			}
			w.logger.Info("File not yet available",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", w.attempts),
				zap.Int("status", resp.StatusCode),
			)
		}

		if attempt < w.attempts {
			w.sleep(w.delay)
		}
	}

	return fmt.Errorf("file not accessible after %s (CDN propagation timeout)",
		time.Duration(w.attempts)*w.delay)
}
