package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saurabk077/currency-exchange/internal/apperrors"
	"github.com/saurabk077/currency-exchange/internal/core/domain"
	portsrepo "github.com/saurabk077/currency-exchange/internal/core/ports/repositories"
	"github.com/saurabk077/currency-exchange/internal/models"
	"github.com/saurabk077/currency-exchange/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the rate store over pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// FindRate retrieves the rate for the exact (source, target, date) triple.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, sourceCode, targetCode string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, source_currency_code, target_currency_code,
		       valuation_date, rate_value, created_at, last_updated_at
		FROM exchange_rates
		WHERE source_currency_code = $1 AND target_currency_code = $2 AND valuation_date = $3;
	`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, sourceCode, targetCode, date).Scan(
		&modelRate.ExchangeRateID,
		&modelRate.SourceCurrencyCode,
		&modelRate.TargetCurrencyCode,
		&modelRate.ValuationDate,
		&modelRate.RateValue,
		&modelRate.CreatedAt,
		&modelRate.LastUpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s->%s: %w", sourceCode, targetCode, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// FindRatesInRange retrieves all stored rates for source within [start, end]
// inclusive, grouped by valuation date then target code. Zero matching rows
// map to ErrNotFound so the service can tell a miss from an empty range.
func (r *PgxExchangeRateRepository) FindRatesInRange(ctx context.Context, sourceCode string, start, end time.Time) (domain.SeriesRates, error) {
	query := `
		SELECT valuation_date, target_currency_code, rate_value
		FROM exchange_rates
		WHERE source_currency_code = $1 AND valuation_date BETWEEN $2 AND $3
		ORDER BY valuation_date, target_currency_code;
	`

	rows, err := r.Pool.Query(ctx, query, sourceCode, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates for %s: %w", sourceCode, err)
	}
	defer rows.Close()

	series := domain.SeriesRates{}
	for rows.Next() {
		var modelRate models.ExchangeRate
		if err := rows.Scan(&modelRate.ValuationDate, &modelRate.TargetCurrencyCode, &modelRate.RateValue); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		dateStr := modelRate.ValuationDate.Format(domain.DateLayout)
		if _, ok := series[dateStr]; !ok {
			series[dateStr] = domain.PointRates{}
		}
		series[dateStr][modelRate.TargetCurrencyCode] = modelRate.RateValue
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}

	if len(series) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return series, nil
}

// UpsertRate inserts the rate or replaces the prior value for its triple.
// The unique constraint on (source, target, date) keeps concurrent writers
// to the same triple at last-write-wins.
func (r *PgxExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, source_currency_code, target_currency_code,
			valuation_date, rate_value, created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (source_currency_code, target_currency_code, valuation_date) DO UPDATE SET
			rate_value = EXCLUDED.rate_value,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.SourceCurrencyCode,
		modelRate.TargetCurrencyCode,
		modelRate.ValuationDate,
		modelRate.RateValue,
		modelRate.CreatedAt,
		modelRate.LastUpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate %s->%s on %s: %w",
			modelRate.SourceCurrencyCode, modelRate.TargetCurrencyCode,
			modelRate.ValuationDate.Format(domain.DateLayout), err)
	}
	return nil
}
