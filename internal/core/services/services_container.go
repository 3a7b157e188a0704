package services

import (
	"log/slog"

	"github.com/saurabk077/currency-exchange/internal/core/ports"
	portsrepo "github.com/saurabk077/currency-exchange/internal/core/ports/repositories"
	portssvc "github.com/saurabk077/currency-exchange/internal/core/ports/services"
	"github.com/saurabk077/currency-exchange/internal/metrics"
)

// NewServiceContainer creates a service container with initialized dependencies.
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	resolver ports.ProviderResolver,
	m *metrics.Metrics,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Provider = NewProviderService(repos.ProviderRepo)
	container.Rate = NewRateService(
		repos.ExchangeRateRepo,
		container.Currency,
		repos.ProviderRepo,
		resolver,
		m,
		logger,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade = (*currencyService)(nil)
	_ portssvc.ProviderSvcFacade = (*providerService)(nil)
)
