package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portsrepo "github.com/BekhzodS/china_shop_app/internal/core/ports/repositories"
	"github.com/BekhzodS/china_shop_app/internal/models"
	"github.com/BekhzodS/china_shop_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCargoRepository struct {
	BaseRepository
}

// newPgxCargoRepository creates a new repository for freight data.
func newPgxCargoRepository(pool *pgxpool.Pool) portsrepo.CargoRepositoryFacade {
	return &PgxCargoRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CargoRepositoryFacade = (*PgxCargoRepository)(nil)

const cargoColumns = `cargo_id, freight_group_id, weight, volume, shipping_cost, status, arrival_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCargo(row pgx.Row) (models.Cargo, error) {
	var m models.Cargo
	err := row.Scan(
		&m.CargoID,
		&m.FreightGroupID,
		&m.Weight,
		&m.Volume,
		&m.ShippingCost,
		&m.Status,
		&m.ArrivalDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindCargoByID retrieves a cargo.
func (r *PgxCargoRepository) FindCargoByID(ctx context.Context, cargoID string) (*domain.Cargo, error) {
	query := `SELECT ` + cargoColumns + ` FROM cargos WHERE cargo_id = $1;`

	m, err := scanCargo(r.Pool.QueryRow(ctx, query, cargoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cargo %s: %w", cargoID, err)
	}

	d := mapping.ToDomainCargo(m)
	return &d, nil
}

// ListCargosByFreightGroup retrieves all cargos of a freight group.
func (r *PgxCargoRepository) ListCargosByFreightGroup(ctx context.Context, freightGroupID string) ([]domain.Cargo, error) {
	query := `SELECT ` + cargoColumns + ` FROM cargos WHERE freight_group_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, freightGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cargos for freight group %s: %w", freightGroupID, err)
	}
	defer rows.Close()

	cargos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Cargo, error) {
		return scanCargo(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cargos: %w", err)
	}

	return mapping.ToDomainCargoSlice(cargos), nil
}

// CreateFreightGroup persists a new freight group.
func (r *PgxCargoRepository) CreateFreightGroup(ctx context.Context, group domain.FreightGroup) error {
	m := mapping.ToModelFreightGroup(group)
	query := `
		INSERT INTO freight_groups (freight_group_id, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FreightGroupID,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create freight group %s: %w", m.FreightGroupID, err)
	}
	return nil
}

// CreateCargo persists a new cargo under an existing freight group.
func (r *PgxCargoRepository) CreateCargo(ctx context.Context, cargo domain.Cargo) error {
	m := mapping.ToModelCargo(cargo)
	query := `
		INSERT INTO cargos (` + cargoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CargoID,
		m.FreightGroupID,
		m.Weight,
		m.Volume,
		m.ShippingCost,
		m.Status,
		m.ArrivalDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create cargo %s: %w", m.CargoID, err)
	}
	return nil
}

// MarkCargoArrived records the actual shipping cost and arrival date and
// flips the cargo status.
func (r *PgxCargoRepository) MarkCargoArrived(ctx context.Context, cargoID string, shippingCost decimal.Decimal, arrivalDate time.Time, updaterUserID string) error {
	query := `
		UPDATE cargos
		SET shipping_cost = $2, arrival_date = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE cargo_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, cargoID, shippingCost, arrivalDate, string(domain.CargoStatusArrived), time.Now(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to mark cargo %s arrived: %w", cargoID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
