package services

import (
	"context"

	"github.com/saurabk077/currency-exchange/internal/core/domain"
)

// ProviderSvcFacade exposes the provider configuration table.
type ProviderSvcFacade interface {
	ListProviders(ctx context.Context) ([]domain.Provider, error)
}
