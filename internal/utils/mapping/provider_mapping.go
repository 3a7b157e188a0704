package mapping

import (
	"github.com/saurabk077/currency-exchange/internal/core/domain"
	"github.com/saurabk077/currency-exchange/internal/models"
)

// ToDomainProvider converts a model Provider to a domain Provider
func ToDomainProvider(m models.Provider) domain.Provider {
	return domain.Provider{
		Name:      m.Name,
		Priority:  m.Priority,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainProviderSlice converts a slice of model Providers to a slice of domain Providers
func ToDomainProviderSlice(ms []models.Provider) []domain.Provider {
	ds := make([]domain.Provider, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProvider(m)
	}
	return ds
}
