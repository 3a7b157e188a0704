package services

import (
	"context"
	"fmt"

	"github.com/saurabk077/currency-exchange/internal/core/domain"
	portsrepo "github.com/saurabk077/currency-exchange/internal/core/ports/repositories"
	portssvc "github.com/saurabk077/currency-exchange/internal/core/ports/services"
)

type providerService struct {
	providerRepo portsrepo.ProviderReader
}

// NewProviderService creates the provider configuration service.
func NewProviderService(providerRepo portsrepo.ProviderReader) portssvc.ProviderSvcFacade {
	return &providerService{providerRepo: providerRepo}
}

func (s *providerService) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	providers, err := s.providerRepo.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers in service: %w", err)
	}
	if providers == nil {
		return []domain.Provider{}, nil
	}
	return providers, nil
}
