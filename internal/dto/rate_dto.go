package dto

import (
	"github.com/saurabk077/currency-exchange/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse is the payload for a single point-rate lookup.
type RateResponse struct {
	SourceCurrencyCode string          `json:"sourceCurrency"`
	TargetCurrencyCode string          `json:"targetCurrency"`
	ValuationDate      string          `json:"valuationDate"`
	RateValue          decimal.Decimal `json:"rateValue"`
}

// TimeSeriesResponse is the payload for a time-series lookup. Rates may be an
// empty object when no provider had data for the range.
type TimeSeriesResponse struct {
	SourceCurrencyCode string                                `json:"sourceCurrency"`
	StartDate          string                                `json:"startDate"`
	EndDate            string                                `json:"endDate"`
	Rates              map[string]map[string]decimal.Decimal `json:"rates"`
}

// ConvertResponse is the payload for an amount conversion.
type ConvertResponse struct {
	SourceCurrencyCode string          `json:"sourceCurrency"`
	TargetCurrencyCode string          `json:"targetCurrency"`
	ValuationDate      string          `json:"valuationDate"`
	RateValue          decimal.Decimal `json:"rateValue"`
	Amount             decimal.Decimal `json:"amount"`
	ConvertedAmount    decimal.Decimal `json:"convertedAmount"`
}

// ToRateResponse converts a domain.ExchangeRate to RateResponse DTO
func ToRateResponse(rate *domain.ExchangeRate) RateResponse {
	return RateResponse{
		SourceCurrencyCode: rate.SourceCurrencyCode,
		TargetCurrencyCode: rate.TargetCurrencyCode,
		ValuationDate:      rate.ValuationDate.Format(domain.DateLayout),
		RateValue:          rate.RateValue,
	}
}

// ToTimeSeriesResponse converts a domain.TimeSeries to TimeSeriesResponse DTO
func ToTimeSeriesResponse(series *domain.TimeSeries) TimeSeriesResponse {
	rates := make(map[string]map[string]decimal.Decimal, len(series.Rates))
	for date, byCode := range series.Rates {
		rates[date] = byCode
	}
	return TimeSeriesResponse{
		SourceCurrencyCode: series.SourceCurrencyCode,
		StartDate:          series.StartDate.Format(domain.DateLayout),
		EndDate:            series.EndDate.Format(domain.DateLayout),
		Rates:              rates,
	}
}

// ToConvertResponse converts a domain.Conversion to ConvertResponse DTO
func ToConvertResponse(conv *domain.Conversion) ConvertResponse {
	return ConvertResponse{
		SourceCurrencyCode: conv.SourceCurrencyCode,
		TargetCurrencyCode: conv.TargetCurrencyCode,
		ValuationDate:      conv.ValuationDate.Format(domain.DateLayout),
		RateValue:          conv.RateValue,
		Amount:             conv.Amount,
		ConvertedAmount:    conv.ConvertedAmount,
	}
}
