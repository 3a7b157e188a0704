package dto

import "github.com/saurabk077/currency-exchange/internal/core/domain"

// ProviderResponse defines the data returned for a registered rate provider.
type ProviderResponse struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Active   bool   `json:"active"`
}

// ToListProviderResponse converts domain Providers to response DTOs
func ToListProviderResponse(providers []domain.Provider) []ProviderResponse {
	res := make([]ProviderResponse, len(providers))
	for i, p := range providers {
		res[i] = ProviderResponse{Name: p.Name, Priority: p.Priority, Active: p.Active}
	}
	return res
}
