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

type PgxCartRepository struct {
	BaseRepository
}

// newPgxCartRepository creates a new repository for cart and snapshot data.
func newPgxCartRepository(pool *pgxpool.Pool) portsrepo.CartRepositoryFacade {
	return &PgxCartRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CartRepositoryFacade = (*PgxCartRepository)(nil)

// FindCartByUserID retrieves the user's cart row.
func (r *PgxCartRepository) FindCartByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	query := `
		SELECT cart_id, user_id, created_at, created_by, last_updated_at, last_updated_by
		FROM carts
		WHERE user_id = $1;
	`
	var m models.Cart
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.CartID,
		&m.UserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cart for user %s: %w", userID, err)
	}

	d := mapping.ToDomainCart(m)
	return &d, nil
}

// CreateCart persists a new cart. The unique constraint on user_id turns a
// concurrent create race into apperrors.ErrDuplicate.
func (r *PgxCartRepository) CreateCart(ctx context.Context, cart domain.Cart) error {
	m := mapping.ToModelCart(cart)
	query := `
		INSERT INTO carts (cart_id, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CartID,
		m.UserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cart for user %s", apperrors.ErrDuplicate, m.UserID)
		}
		return fmt.Errorf("failed to create cart for user %s: %w", m.UserID, err)
	}
	return nil
}

// ListLines retrieves all lines of a cart, each joined with its current
// price snapshot.
func (r *PgxCartRepository) ListLines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	query := `
		SELECT cl.cart_line_id, cl.cart_id, cl.product_id, cl.product_name, cl.product_image_url,
			cl.variant_selector, cl.quantity, cl.snapshot_id,
			cl.created_at, cl.created_by, cl.last_updated_at, cl.last_updated_by,
			ps.snapshot_id, ps.rate_used, ps.converted_amount, ps.final_per_item_price, ps.service_fee_percent,
			ps.created_at, ps.created_by, ps.last_updated_at, ps.last_updated_by
		FROM cart_lines cl
		JOIN price_snapshots ps ON ps.snapshot_id = cl.snapshot_id
		WHERE cl.cart_id = $1
		ORDER BY cl.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CartLine, error) {
		var ml models.CartLine
		var ms models.PriceSnapshot
		err := row.Scan(
			&ml.CartLineID, &ml.CartID, &ml.ProductID, &ml.ProductName, &ml.ProductImageURL,
			&ml.VariantSelector, &ml.Quantity, &ml.SnapshotID,
			&ml.CreatedAt, &ml.CreatedBy, &ml.LastUpdatedAt, &ml.LastUpdatedBy,
			&ms.SnapshotID, &ms.RateUsed, &ms.ConvertedAmount, &ms.FinalPerItemPrice, &ms.ServiceFeePercent,
			&ms.CreatedAt, &ms.CreatedBy, &ms.LastUpdatedAt, &ms.LastUpdatedBy,
		)
		if err != nil {
			return domain.CartLine{}, err
		}
		line := mapping.ToDomainCartLine(ml)
		snapshot := mapping.ToDomainPriceSnapshot(ms)
		line.Snapshot = &snapshot
		return line, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cart lines: %w", err)
	}
	return lines, nil
}

// SaveSnapshot persists a new immutable price snapshot.
func (r *PgxCartRepository) SaveSnapshot(ctx context.Context, snapshot domain.PriceSnapshot) error {
	m := mapping.ToModelPriceSnapshot(snapshot)
	query := `
		INSERT INTO price_snapshots (snapshot_id, rate_used, converted_amount, final_per_item_price, service_fee_percent,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SnapshotID,
		m.RateUsed,
		m.ConvertedAmount,
		m.FinalPerItemPrice,
		m.ServiceFeePercent,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save price snapshot %s: %w", m.SnapshotID, err)
	}
	return nil
}

// UpsertLine inserts the line or, on (cart_id, product_id, variant_selector)
// conflict, increments the quantity and repoints the snapshot reference.
func (r *PgxCartRepository) UpsertLine(ctx context.Context, line domain.CartLine) error {
	m := mapping.ToModelCartLine(line)
	query := `
		INSERT INTO cart_lines (cart_line_id, cart_id, product_id, product_name, product_image_url,
			variant_selector, quantity, snapshot_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (cart_id, product_id, variant_selector) DO UPDATE SET
			quantity = cart_lines.quantity + EXCLUDED.quantity,
			snapshot_id = EXCLUDED.snapshot_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CartLineID,
		m.CartID,
		m.ProductID,
		m.ProductName,
		m.ProductImageURL,
		m.VariantSelector,
		m.Quantity,
		m.SnapshotID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cart line for product %s: %w", m.ProductID, err)
	}
	return nil
}

// DeleteLine removes a line; a missing line is apperrors.ErrNotFound.
func (r *PgxCartRepository) DeleteLine(ctx context.Context, cartID, productID, variantSelector string) error {
	query := `
		DELETE FROM cart_lines
		WHERE cart_id = $1 AND product_id = $2 AND variant_selector = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, cartID, productID, variantSelector)
	if err != nil {
		return fmt.Errorf("failed to delete cart line for product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearLines removes all lines of a cart.
func (r *PgxCartRepository) ClearLines(ctx context.Context, cartID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1;`, cartID)
	if err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}
