package repositories

import (
	"context"

	"github.com/saurabk077/currency-exchange/internal/core/domain"
)

// ProviderReader exposes the provider configuration table. Providers are
// read-only configuration to the rate pipeline.
type ProviderReader interface {
	// ListActiveProviders returns active providers ordered by ascending
	// priority, ties broken by name.
	ListActiveProviders(ctx context.Context) ([]domain.Provider, error)

	// ListProviders returns every registered provider in the same order.
	ListProviders(ctx context.Context) ([]domain.Provider, error)
}
