package repositories

import (
	"context"
	"time"

	"github.com/saurabk077/currency-exchange/internal/core/domain"
)

// ExchangeRateReader defines the cache-lookup side of the rate store.
type ExchangeRateReader interface {
	// FindRate retrieves the rate for the exact (source, target, date) triple.
	// Returns apperrors.ErrNotFound when no row matches.
	FindRate(ctx context.Context, sourceCode, targetCode string, date time.Time) (*domain.ExchangeRate, error)

	// FindRatesInRange retrieves all stored rates for the source currency with
	// a valuation date within [start, end] inclusive, grouped by date then
	// target code. Returns apperrors.ErrNotFound when zero rows match, so
	// callers can tell a cache miss from a legitimately empty range.
	FindRatesInRange(ctx context.Context, sourceCode string, start, end time.Time) (domain.SeriesRates, error)
}

// ExchangeRateWriter defines the write-back side of the rate store.
type ExchangeRateWriter interface {
	// UpsertRate inserts the rate or replaces the prior value for its
	// (source, target, date) triple.
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
