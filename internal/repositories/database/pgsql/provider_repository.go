package pgsql

import (
	"context"
	"fmt"

	"github.com/saurabk077/currency-exchange/internal/core/domain"
	portsrepo "github.com/saurabk077/currency-exchange/internal/core/ports/repositories"
	"github.com/saurabk077/currency-exchange/internal/models"
	"github.com/saurabk077/currency-exchange/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProviderRepository reads the provider configuration table.
type PgxProviderRepository struct {
	BaseRepository
}

func newPgxProviderRepository(pool *pgxpool.Pool) portsrepo.ProviderReader {
	return &PgxProviderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProviderReader = (*PgxProviderRepository)(nil)

// ListActiveProviders returns active providers in fallback order: ascending
// priority, ties broken by name so the order is deterministic.
func (r *PgxProviderRepository) ListActiveProviders(ctx context.Context) ([]domain.Provider, error) {
	return r.list(ctx, `
		SELECT name, priority, active, created_at
		FROM providers
		WHERE active
		ORDER BY priority, name;
	`)
}

// ListProviders returns every registered provider in the same order.
func (r *PgxProviderRepository) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	return r.list(ctx, `
		SELECT name, priority, active, created_at
		FROM providers
		ORDER BY priority, name;
	`)
}

func (r *PgxProviderRepository) list(ctx context.Context, query string) ([]domain.Provider, error) {
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	modelProviders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Provider, error) {
		var provider models.Provider
		err := row.Scan(&provider.Name, &provider.Priority, &provider.Active, &provider.CreatedAt)
		return provider, err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan providers: %w", err)
	}

	return mapping.ToDomainProviderSlice(modelProviders), nil
}
