package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PointRates is the normalized single-date adapter output:
// target currency code -> rate. Providers may omit requested targets; an empty
// map signals "no data from this provider" and drives fallback continuation.
type PointRates map[string]decimal.Decimal

// SeriesRates is the normalized time-series adapter output:
// date string (DateLayout) -> target currency code -> rate.
type SeriesRates map[string]PointRates

// TimeSeries is the orchestrator's time-series result. Rates may legitimately
// be empty; that is distinct from a lookup error.
type TimeSeries struct {
	SourceCurrencyCode string      `json:"sourceCurrencyCode"`
	StartDate          time.Time   `json:"startDate"`
	EndDate            time.Time   `json:"endDate"`
	Rates              SeriesRates `json:"rates"`
}
