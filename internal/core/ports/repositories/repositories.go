package repositories

// RepositoryProvider groups the concrete repositories handed to the service layer.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	ProviderRepo     ProviderReader
}
