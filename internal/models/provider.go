package models

import "time"

// Provider is the database row shape for a registered rate provider.
type Provider struct {
	Name      string    `json:"name"`
	Priority  int       `json:"priority"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
