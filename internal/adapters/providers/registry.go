package providers

import (
	"fmt"

	"github.com/saurabk077/currency-exchange/internal/apperrors"
	"github.com/saurabk077/currency-exchange/internal/core/ports"
)

// Registry maps configured provider names to adapter instances. Building the
// registry wires no network resources beyond what each adapter was
// constructed with; Resolve is a pure lookup.
type Registry struct {
	adapters map[string]ports.RateProvider
}

var _ ports.ProviderResolver = (*Registry)(nil)

// NewRegistry builds a registry keyed by each adapter's Name().
func NewRegistry(adapters ...ports.RateProvider) *Registry {
	m := make(map[string]ports.RateProvider, len(adapters))
	for _, a := range adapters {
		m[a.Name()] = a
	}
	return &Registry{adapters: m}
}

// Resolve returns the adapter registered under name.
func (r *Registry) Resolve(name string) (ports.RateProvider, error) {
	adapter, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownProvider, name)
	}
	return adapter, nil
}
