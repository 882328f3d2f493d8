package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Screening metrics
	symbolsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "screener_symbols_processed_total",
			Help: "Total number of symbols that produced a screening row",
		},
	)

	symbolsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screener_symbols_skipped_total",
			Help: "Total number of symbols skipped, by reason",
		},
		[]string{"reason"},
	)

	screeningDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screener_run_duration_seconds",
			Help:    "Duration of screening runs",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	// Fetch metrics
	fetchRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screener_fetch_retries_total",
			Help: "Total number of market data fetch retries",
		},
		[]string{"provider"},
	)

	// Portfolio metrics
	openPositions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "screener_open_positions",
			Help: "Number of currently open simulated positions",
		},
		[]string{"strategy"},
	)

	positionsClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screener_positions_closed_total",
			Help: "Total number of closed simulated positions, by exit reason",
		},
		[]string{"strategy", "exit_reason"},
	)
)

func init() {
	prometheus.MustRegister(symbolsProcessed)
	prometheus.MustRegister(symbolsSkipped)
	prometheus.MustRegister(screeningDuration)
	prometheus.MustRegister(fetchRetries)
	prometheus.MustRegister(openPositions)
	prometheus.MustRegister(positionsClosed)
}

// MetricsHandler serves the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordScreeningRun records the outcome of one screening run.
// Skipped symbols are recorded individually with their reason.
func RecordScreeningRun(processed int, duration time.Duration) {
	symbolsProcessed.Add(float64(processed))
	screeningDuration.Observe(duration.Seconds())
}

// RecordSymbolSkipped counts one skipped symbol.
func RecordSymbolSkipped(reason string) {
	symbolsSkipped.WithLabelValues(reason).Inc()
}

// RecordFetchRetry counts one fetch retry against a provider.
func RecordFetchRetry(provider string) {
	fetchRetries.WithLabelValues(provider).Inc()
}

// SetOpenPositions updates the open position gauge for a strategy.
func SetOpenPositions(strategy string, count int) {
	openPositions.WithLabelValues(strategy).Set(float64(count))
}

// RecordPositionClosed counts one closed position by exit reason.
func RecordPositionClosed(strategy, exitReason string) {
	positionsClosed.WithLabelValues(strategy, exitReason).Inc()
}
