package services

import (
	"context"
	"time"

	"github.com/saurabk077/currency-exchange/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSvcFacade is the public surface of the cache-through rate pipeline.
type RateSvcFacade interface {
	// GetRate returns the rate for (source, target, date), serving from the
	// local store when present and falling back to external providers
	// otherwise. Returns apperrors.ErrUnknownCurrency for codes outside the
	// reference data and apperrors.ErrNoData when every avenue is exhausted.
	GetRate(ctx context.Context, sourceCode, targetCode string, date time.Time) (*domain.ExchangeRate, error)

	// GetTimeSeries returns all rates for source over [start, end] inclusive.
	// Any non-empty stored result is served as-is; otherwise providers are
	// queried, the result filtered to known currencies, stored, and returned.
	// The returned series may carry an empty rates map.
	GetTimeSeries(ctx context.Context, sourceCode string, start, end time.Time) (*domain.TimeSeries, error)

	// Convert applies today's source->target rate to amount.
	Convert(ctx context.Context, sourceCode, targetCode string, amount decimal.Decimal) (*domain.Conversion, error)
}
