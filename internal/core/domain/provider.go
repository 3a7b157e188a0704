package domain

import "time"

// Provider is one registered external rate source. Read-only configuration to
// the rate pipeline: lower priority is tried first, inactive providers are
// never invoked. Ties on priority are broken by name for a deterministic order.
type Provider struct {
	Name      string    `json:"name"` // Primary Key, matches a registered adapter
	Priority  int       `json:"priority"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
