package marketdata

import (
	"context"
	"os"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"go.uber.org/zap"

	scrErrors "github.com/quantbench/stock-screener/internal/errors"
	"github.com/quantbench/stock-screener/pkg/types"
)

// AlpacaProvider fetches daily bars from the Alpaca market data API.
type AlpacaProvider struct {
	client  *marketdata.Client
	cfg     FetchConfig
	limiter *RateLimiter
	logger  *zap.SugaredLogger
}

// NewAlpacaProvider creates a provider from ALPACA_API_KEY and
// ALPACA_SECRET_KEY in the environment.
func NewAlpacaProvider(cfg FetchConfig, logger *zap.SugaredLogger) (*AlpacaProvider, error) {
	apiKey := os.Getenv("ALPACA_API_KEY")
	apiSecret := os.Getenv("ALPACA_SECRET_KEY")
	if apiKey == "" || apiSecret == "" {
		return nil, scrErrors.New(scrErrors.ErrorCategoryConfiguration, "marketdata", "init",
			"ALPACA_API_KEY and ALPACA_SECRET_KEY must be set")
	}

	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	var limiter *RateLimiter
	if cfg.RequestsPerMinute > 0 {
		perSecond := cfg.RequestsPerMinute / 60
		if perSecond < 1 {
			perSecond = 1
		}
		limiter = NewRateLimiter(cfg.RequestsPerMinute, perSecond)
	}

	return &AlpacaProvider{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		cfg:     cfg,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Name identifies the provider.
func (p *AlpacaProvider) Name() string {
	return "alpaca"
}

// Fetch pulls split-adjusted daily bars through the rate limiter and
// retry wrapper. An exhausted retry budget surfaces as an external
// fetch failure; the caller skips the symbol for this run.
func (p *AlpacaProvider) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	if p.limiter != nil {
		if err := p.limiter.Wait(fetchCtx); err != nil {
			return nil, scrErrors.Wrap(err, scrErrors.ErrorCategoryRateLimit, "marketdata", "fetch").
				WithSymbol(symbol)
		}
	}

	var bars []marketdata.Bar
	err := Retry(fetchCtx, p.Name(), p.cfg.Retry, func() error {
		var fetchErr error
		bars, fetchErr = p.client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame:  marketdata.OneDay,
			Start:      start,
			End:        end,
			Adjustment: marketdata.Split,
		})
		return fetchErr
	})
	if err != nil {
		p.logger.Warnw("fetch failed after retries", "symbol", symbol, "err", err)
		return nil, err
	}

	out := make([]types.OHLCV, 0, len(bars))
	for _, bar := range bars {
		out = append(out, types.OHLCV{
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    float64(bar.Volume),
			Timestamp: bar.Timestamp.UTC(),
		})
	}
	return out, nil
}
