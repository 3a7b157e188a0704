package domain

import "time"

// Currency represents a supported currency in the domain.
// Reference data: the rate pipeline only reads it.
type Currency struct {
	CurrencyCode  string    `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name          string    `json:"name"`         // e.g., "US Dollar"
	Symbol        string    `json:"symbol"`       // e.g., "$"
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
