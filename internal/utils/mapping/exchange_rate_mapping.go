package mapping

import (
	"github.com/saurabk077/currency-exchange/internal/core/domain"
	"github.com/saurabk077/currency-exchange/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:     d.ExchangeRateID,
		SourceCurrencyCode: d.SourceCurrencyCode,
		TargetCurrencyCode: d.TargetCurrencyCode,
		ValuationDate:      d.ValuationDate,
		RateValue:          d.RateValue,
		CreatedAt:          d.CreatedAt,
		LastUpdatedAt:      d.LastUpdatedAt,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:     m.ExchangeRateID,
		SourceCurrencyCode: m.SourceCurrencyCode,
		TargetCurrencyCode: m.TargetCurrencyCode,
		ValuationDate:      m.ValuationDate,
		RateValue:          m.RateValue,
		CreatedAt:          m.CreatedAt,
		LastUpdatedAt:      m.LastUpdatedAt,
	}
}
