// Package marketdata wraps the external OHLCV collaborator behind a
// fetch contract with bounded retries, timeouts and rate limiting.
package marketdata

import (
	"context"
	"time"

	"github.com/quantbench/stock-screener/pkg/types"
)

// Provider pulls daily bars for a symbol over a date range. A nil, empty
// result with nil error means the provider has no data for the symbol;
// callers treat that as DataUnavailable, not a fault.
type Provider interface {
	// Fetch returns daily bars in ascending date order.
	Fetch(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}

// FetchConfig bounds every outbound call.
type FetchConfig struct {
	Timeout time.Duration `json:"timeout"`
	Retry   RetryConfig   `json:"retry"`

	// RequestsPerMinute throttles the provider; 0 disables throttling.
	RequestsPerMinute int `json:"requests_per_minute"`
}

// DefaultFetchConfig returns conservative fetch bounds.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Timeout:           30 * time.Second,
		Retry:             DefaultRetryConfig(),
		RequestsPerMinute: 120,
	}
}
