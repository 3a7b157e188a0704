package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the database row shape for a stored rate.
// UNIQUE(source_currency_code, target_currency_code, valuation_date).
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	SourceCurrencyCode string          `json:"sourceCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	ValuationDate      time.Time       `json:"valuationDate"`
	RateValue          decimal.Decimal `json:"rateValue"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}
