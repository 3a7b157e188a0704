package ports

import (
	"context"
	"time"

	"github.com/saurabk077/currency-exchange/internal/core/domain"
)

// RateProvider is the capability contract every provider adapter implements.
// Adapters translate provider-agnostic requests into the provider's wire call
// and normalize the raw response into the domain rate shapes.
//
// Failure policy: transport errors and non-success responses are reported as
// an empty result with a nil error; that emptiness is what drives the fallback
// chain to the next provider. A non-nil error signals an unexpected local
// failure (request construction, payload decoding) and is also treated by the
// chain as "try the next provider".
type RateProvider interface {
	// Name is the registry key; it matches Provider.Name in configuration.
	Name() string

	// GetExchangeRate fetches rates from source into the requested targets on
	// a single date. The result may cover any subset of the targets.
	GetExchangeRate(ctx context.Context, sourceCode string, targetCodes []string, date time.Time) (domain.PointRates, error)

	// GetTimeSeries fetches all rates from source over [start, end] inclusive.
	GetTimeSeries(ctx context.Context, sourceCode string, start, end time.Time) (domain.SeriesRates, error)
}

// ProviderResolver maps a configured provider name to its adapter instance.
// Resolution is a pure lookup; it performs no I/O.
type ProviderResolver interface {
	// Resolve returns apperrors.ErrUnknownProvider for unregistered names.
	Resolve(name string) (RateProvider, error)
}
