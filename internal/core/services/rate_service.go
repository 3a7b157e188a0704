package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/saurabk077/currency-exchange/internal/apperrors"
	"github.com/saurabk077/currency-exchange/internal/core/domain"
	"github.com/saurabk077/currency-exchange/internal/core/ports"
	portsrepo "github.com/saurabk077/currency-exchange/internal/core/ports/repositories"
	portssvc "github.com/saurabk077/currency-exchange/internal/core/ports/services"
	"github.com/saurabk077/currency-exchange/internal/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// rateService implements the cache-through rate pipeline: local store lookup,
// ordered provider fallback, write-back with unknown-currency filtering.
type rateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencySvc  portssvc.CurrencyReaderSvc
	providerRepo portsrepo.ProviderReader
	resolver     ports.ProviderResolver
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewRateService creates the rate pipeline service.
func NewRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencySvc portssvc.CurrencyReaderSvc,
	providerRepo portsrepo.ProviderReader,
	resolver ports.ProviderResolver,
	m *metrics.Metrics,
	logger *slog.Logger,
) portssvc.RateSvcFacade {
	return &rateService{
		rateRepo:     rateRepo,
		currencySvc:  currencySvc,
		providerRepo: providerRepo,
		resolver:     resolver,
		metrics:      m,
		logger:       logger,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// GetRate serves the rate from the local store when present, otherwise runs
// the provider fallback chain and writes the result back.
func (s *rateService) GetRate(ctx context.Context, sourceCode, targetCode string, date time.Time) (*domain.ExchangeRate, error) {
	if err := validateCode(sourceCode); err != nil {
		return nil, err
	}
	if err := validateCode(targetCode); err != nil {
		return nil, err
	}
	if err := s.ensureKnownCurrency(ctx, sourceCode); err != nil {
		return nil, err
	}
	if err := s.ensureKnownCurrency(ctx, targetCode); err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindRate(ctx, sourceCode, targetCode, date)
	if err == nil {
		s.metrics.CacheHitsTotal.Inc()
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("rate lookup failed: %w", err)
	}
	s.metrics.CacheMissesTotal.Inc()
	s.logger.Info("rate not in local store, trying providers",
		slog.String("source", sourceCode),
		slog.String("target", targetCode),
		slog.String("date", date.Format(domain.DateLayout)),
	)

	fetched, err := s.fetchPointRates(ctx, sourceCode, []string{targetCode}, date)
	if err != nil {
		return nil, err
	}

	// Persist everything the provider returned, not just the requested target.
	s.storeRates(ctx, sourceCode, fetched, date)

	value, ok := fetched[targetCode]
	if !ok {
		return nil, fmt.Errorf("%w: %s->%s on %s", apperrors.ErrNoData,
			sourceCode, targetCode, date.Format(domain.DateLayout))
	}

	return &domain.ExchangeRate{
		SourceCurrencyCode: sourceCode,
		TargetCurrencyCode: targetCode,
		ValuationDate:      date,
		RateValue:          value,
	}, nil
}

// GetTimeSeries serves a date range. Any non-empty stored result is treated
// as a full hit; missing dates inside it are not re-fetched from providers.
func (s *rateService) GetTimeSeries(ctx context.Context, sourceCode string, start, end time.Time) (*domain.TimeSeries, error) {
	if err := validateCode(sourceCode); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}
	if err := s.ensureKnownCurrency(ctx, sourceCode); err != nil {
		return nil, err
	}

	series, err := s.rateRepo.FindRatesInRange(ctx, sourceCode, start, end)
	if err == nil {
		s.metrics.CacheHitsTotal.Inc()
		return &domain.TimeSeries{
			SourceCurrencyCode: sourceCode,
			StartDate:          start,
			EndDate:            end,
			Rates:              series,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("time series lookup failed: %w", err)
	}
	s.metrics.CacheMissesTotal.Inc()
	s.logger.Info("time series not in local store, trying providers",
		slog.String("source", sourceCode),
		slog.String("start", start.Format(domain.DateLayout)),
		slog.String("end", end.Format(domain.DateLayout)),
	)

	raw, err := s.fetchSeriesRates(ctx, sourceCode, start, end)
	if err != nil {
		return nil, err
	}

	filtered, err := s.filterSeries(ctx, sourceCode, raw)
	if err != nil {
		return nil, err
	}

	for dateStr, byCode := range filtered {
		date, err := time.Parse(domain.DateLayout, dateStr)
		if err != nil {
			s.logger.Warn("skipping provider date with unparseable key", slog.String("date", dateStr))
			continue
		}
		s.storeRates(ctx, sourceCode, byCode, date)
	}

	// An empty rates map is a valid response; the caller still gets the
	// requested range echoed back.
	return &domain.TimeSeries{
		SourceCurrencyCode: sourceCode,
		StartDate:          start,
		EndDate:            end,
		Rates:              filtered,
	}, nil
}

// Convert applies today's source->target rate to amount.
func (s *rateService) Convert(ctx context.Context, sourceCode, targetCode string, amount decimal.Decimal) (*domain.Conversion, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	rate, err := s.GetRate(ctx, sourceCode, targetCode, today)
	if err != nil {
		return nil, err
	}

	return &domain.Conversion{
		SourceCurrencyCode: sourceCode,
		TargetCurrencyCode: targetCode,
		ValuationDate:      today,
		RateValue:          rate.RateValue,
		Amount:             amount,
		ConvertedAmount:    amount.Mul(rate.RateValue),
	}, nil
}

// fetchPointRates runs the fallback chain for a single-date lookup: active
// providers in priority order, first non-empty result wins. Per-provider
// failures are logged and skipped; only provider-list retrieval errors
// surface to the caller.
func (s *rateService) fetchPointRates(ctx context.Context, sourceCode string, targetCodes []string, date time.Time) (domain.PointRates, error) {
	providers, err := s.providerRepo.ListActiveProviders(ctx)
	if err != nil {
		s.logger.Error("failed to list providers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: provider list unavailable", apperrors.ErrNoData)
	}

	for _, p := range providers {
		adapter, err := s.resolver.Resolve(p.Name)
		if err != nil {
			s.logger.Warn("no adapter registered for provider", slog.String("provider", p.Name))
			continue
		}

		s.metrics.ProviderRequestsTotal.WithLabelValues(p.Name).Inc()
		rates, err := adapter.GetExchangeRate(ctx, sourceCode, targetCodes, date)
		if err != nil {
			s.metrics.ProviderFailuresTotal.WithLabelValues(p.Name).Inc()
			s.logger.Warn("provider fetch failed", slog.String("provider", p.Name), slog.String("error", err.Error()))
			continue
		}
		if len(rates) == 0 {
			s.metrics.ProviderFailuresTotal.WithLabelValues(p.Name).Inc()
			s.logger.Info("provider returned no data", slog.String("provider", p.Name))
			continue
		}

		s.logger.Info("rates fetched from provider",
			slog.String("provider", p.Name), slog.Int("count", len(rates)))
		return rates, nil
	}

	return domain.PointRates{}, nil
}

// fetchSeriesRates is the time-series variant of the fallback chain.
func (s *rateService) fetchSeriesRates(ctx context.Context, sourceCode string, start, end time.Time) (domain.SeriesRates, error) {
	providers, err := s.providerRepo.ListActiveProviders(ctx)
	if err != nil {
		s.logger.Error("failed to list providers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: provider list unavailable", apperrors.ErrNoData)
	}

	for _, p := range providers {
		adapter, err := s.resolver.Resolve(p.Name)
		if err != nil {
			s.logger.Warn("no adapter registered for provider", slog.String("provider", p.Name))
			continue
		}

		s.metrics.ProviderRequestsTotal.WithLabelValues(p.Name).Inc()
		series, err := adapter.GetTimeSeries(ctx, sourceCode, start, end)
		if err != nil {
			s.metrics.ProviderFailuresTotal.WithLabelValues(p.Name).Inc()
			s.logger.Warn("provider fetch failed", slog.String("provider", p.Name), slog.String("error", err.Error()))
			continue
		}
		if len(series) == 0 {
			s.metrics.ProviderFailuresTotal.WithLabelValues(p.Name).Inc()
			s.logger.Info("provider returned no data", slog.String("provider", p.Name))
			continue
		}

		s.logger.Info("time series fetched from provider",
			slog.String("provider", p.Name), slog.Int("dates", len(series)))
		return series, nil
	}

	return domain.SeriesRates{}, nil
}

// storeRates upserts one date's worth of provider rates. Unknown target
// currencies are skipped with a log line; per-row storage failures are also
// skipped so one bad entry never aborts the batch.
func (s *rateService) storeRates(ctx context.Context, sourceCode string, rates domain.PointRates, date time.Time) {
	for targetCode, value := range rates {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, targetCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.metrics.RatesSkippedTotal.Inc()
				s.logger.Warn("skipping rate for currency not in reference data",
					slog.String("target", targetCode))
			} else {
				s.logger.Warn("skipping rate, currency lookup failed",
					slog.String("target", targetCode), slog.String("error", err.Error()))
			}
			continue
		}

		now := time.Now().UTC()
		rate := domain.ExchangeRate{
			ExchangeRateID:     uuid.NewString(),
			SourceCurrencyCode: sourceCode,
			TargetCurrencyCode: targetCode,
			ValuationDate:      date,
			RateValue:          value,
			CreatedAt:          now,
			LastUpdatedAt:      now,
		}
		if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
			s.logger.Warn("failed to store rate",
				slog.String("source", sourceCode),
				slog.String("target", targetCode),
				slog.String("error", err.Error()))
			continue
		}
		s.metrics.RatesStoredTotal.Inc()
	}
}

// filterSeries restricts a provider's raw series to reference currencies.
// Dates whose filtered mapping is empty are dropped; an unrecognized source
// currency discards the whole batch.
func (s *rateService) filterSeries(ctx context.Context, sourceCode string, raw domain.SeriesRates) (domain.SeriesRates, error) {
	currencies, err := s.currencySvc.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing currencies for filtering: %w", err)
	}

	known := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		known[c.CurrencyCode] = struct{}{}
	}

	if _, ok := known[sourceCode]; !ok {
		s.logger.Warn("discarding series, source currency not in reference data",
			slog.String("source", sourceCode))
		return domain.SeriesRates{}, nil
	}

	filtered := domain.SeriesRates{}
	for date, byCode := range raw {
		kept := domain.PointRates{}
		for code, value := range byCode {
			if _, ok := known[code]; ok {
				kept[code] = value
			} else {
				s.metrics.RatesSkippedTotal.Inc()
			}
		}
		if len(kept) > 0 {
			filtered[date] = kept
		}
	}
	return filtered, nil
}

// ensureKnownCurrency maps a missing reference row to ErrUnknownCurrency so
// callers can distinguish "unsupported currency" from "rate not found".
func (s *rateService) ensureKnownCurrency(ctx context.Context, code string) error {
	_, err := s.currencySvc.GetCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, code)
		}
		return fmt.Errorf("currency lookup failed for %s: %w", code, err)
	}
	return nil
}

func validateCode(code string) error {
	if len(code) < 2 || len(code) > 4 {
		return fmt.Errorf("%w: currency code %q must be 2 to 4 characters", apperrors.ErrValidation, code)
	}
	return nil
}
