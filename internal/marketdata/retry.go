package marketdata

import (
	"context"
	"math"
	"math/rand"
	"time"

	scrErrors "github.com/quantbench/stock-screener/internal/errors"
	"github.com/quantbench/stock-screener/internal/monitoring"
)

// RetryConfig holds the exponential backoff parameters for fetches.
type RetryConfig struct {
	MaxRetries    int           `json:"max_retries"`
	InitialDelay  time.Duration `json:"initial_delay"`
	MaxDelay      time.Duration `json:"max_delay"`
	BackoffFactor float64       `json:"backoff_factor"`
	JitterEnabled bool          `json:"jitter_enabled"`
}

// DefaultRetryConfig returns a default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// RetryableFunc represents one fetch attempt.
type RetryableFunc func() error

// Retry executes fn with exponential backoff. Only retryable errors
// (network, timeout, rate limit) trigger another attempt; anything else
// fails immediately. The exhausted error is classified as an external
// fetch failure so the caller degrades the symbol to skipped.
func Retry(ctx context.Context, providerName string, config RetryConfig, fn RetryableFunc) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == config.MaxRetries {
			break
		}
		if !scrErrors.Categorize(err, "marketdata", "fetch").IsRetryable() {
			break
		}

		monitoring.RecordFetchRetry(providerName)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(calculateDelay(attempt, config)):
		}
	}

	return scrErrors.Wrap(lastErr, scrErrors.ErrorCategoryExternalFetch, "marketdata", "fetch").
		WithRetryable(false)
}

// calculateDelay computes the backoff delay for a retry attempt.
func calculateDelay(attempt int, config RetryConfig) time.Duration {
	delay := config.InitialDelay
	if attempt > 0 {
		delay = time.Duration(float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt)))
	}
	if delay > config.MaxDelay {
		delay = config.MaxDelay
	}
	if config.JitterEnabled && delay > 0 {
		// Up to 25% jitter keeps simultaneous retries from clustering.
		jitter := time.Duration(rand.Int63n(int64(delay) / 4))
		delay += jitter
	}
	return delay
}
