package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portsrepo "github.com/BekhzodS/china_shop_app/internal/core/ports/repositories"
	"github.com/BekhzodS/china_shop_app/internal/models"
	"github.com/BekhzodS/china_shop_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRateRepository struct {
	BaseRepository
}

// newPgxRateRepository creates a new repository for currency rate data.
func newPgxRateRepository(pool *pgxpool.Pool) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

const rateColumns = `currency_code, name, symbol, rate, markup, active, created_at, created_by, last_updated_at, last_updated_by`

func scanRate(row pgx.Row) (models.CurrencyRate, error) {
	var m models.CurrencyRate
	err := row.Scan(
		&m.CurrencyCode,
		&m.Name,
		&m.Symbol,
		&m.Rate,
		&m.Markup,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindRateByCode retrieves a currency rate by its 3-letter code.
func (r *PgxRateRepository) FindRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	query := `SELECT ` + rateColumns + ` FROM currency_rates WHERE currency_code = $1;`

	m, err := scanRate(r.Pool.QueryRow(ctx, query, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency rate by code %s: %w", currencyCode, err)
	}

	d := mapping.ToDomainCurrencyRate(m)
	return &d, nil
}

// ListRates retrieves all currency rates.
func (r *PgxRateRepository) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	query := `SELECT ` + rateColumns + ` FROM currency_rates ORDER BY currency_code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CurrencyRate, error) {
		return scanRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currency rates: %w", err)
	}

	return mapping.ToDomainCurrencyRateSlice(rates), nil
}

// CountRates returns the number of rate rows.
func (r *PgxRateRepository) CountRates(ctx context.Context) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM currency_rates;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count currency rates: %w", err)
	}
	return count, nil
}

// InsertRate persists a new currency rate. A unique violation on
// currency_code maps to apperrors.ErrDuplicate so racing seeders can treat
// it as a no-op.
func (r *PgxRateRepository) InsertRate(ctx context.Context, rate domain.CurrencyRate) error {
	m := mapping.ToModelCurrencyRate(rate)
	query := `
		INSERT INTO currency_rates (` + rateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.CurrencyCode,
		m.Name,
		m.Symbol,
		m.Rate,
		m.Markup,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: currency rate %s", apperrors.ErrDuplicate, m.CurrencyCode)
		}
		return fmt.Errorf("failed to insert currency rate %s: %w", m.CurrencyCode, err)
	}
	return nil
}

// UpdateRate updates an existing rate row in place.
func (r *PgxRateRepository) UpdateRate(ctx context.Context, rate domain.CurrencyRate) error {
	m := mapping.ToModelCurrencyRate(rate)
	query := `
		UPDATE currency_rates
		SET name = $2, symbol = $3, rate = $4, markup = $5, active = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE currency_code = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		m.CurrencyCode,
		m.Name,
		m.Symbol,
		m.Rate,
		m.Markup,
		m.Active,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency rate %s: %w", m.CurrencyCode, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
