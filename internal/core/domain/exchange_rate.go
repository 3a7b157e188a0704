package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the rate to convert one unit of the source currency into the
// target currency on a specific valuation date. The triple
// (source, target, valuation date) is unique; upserts replace the prior value.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	SourceCurrencyCode string          `json:"sourceCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	ValuationDate      time.Time       `json:"valuationDate"`
	RateValue          decimal.Decimal `json:"rateValue"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// Conversion is the result of applying an exchange rate to an amount.
type Conversion struct {
	SourceCurrencyCode string          `json:"sourceCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	ValuationDate      time.Time       `json:"valuationDate"`
	RateValue          decimal.Decimal `json:"rateValue"`
	Amount             decimal.Decimal `json:"amount"`
	ConvertedAmount    decimal.Decimal `json:"convertedAmount"`
}
