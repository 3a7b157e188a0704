package services

// ServiceContainer groups the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Currency CurrencySvcFacade
	Rate     RateSvcFacade
	Provider ProviderSvcFacade
}
