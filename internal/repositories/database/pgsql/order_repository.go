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

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for order data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, user_id, freight_group_id, subtotal, delivery_fee, total, status, purchased, purchased_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.UserID,
		&m.FreightGroupID,
		&m.Subtotal,
		&m.DeliveryFee,
		&m.Total,
		&m.Status,
		&m.Purchased,
		&m.PurchasedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindOrderByID retrieves an order together with its lines.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}

	lines, err := r.listLines(ctx, orderID)
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainOrder(m)
	d.Lines = lines
	return &d, nil
}

func (r *PgxOrderRepository) listLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	query := `
		SELECT order_line_id, order_id, product_id, product_name, variant_selector, quantity, final_price_at_purchase
		FROM order_lines
		WHERE order_id = $1
		ORDER BY order_line_id;
	`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines for %s: %w", orderID, err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderLine, error) {
		var m models.OrderLine
		err := row.Scan(
			&m.OrderLineID,
			&m.OrderID,
			&m.ProductID,
			&m.ProductName,
			&m.VariantSelector,
			&m.Quantity,
			&m.FinalPriceAtPurchase,
		)
		if err != nil {
			return domain.OrderLine{}, err
		}
		return mapping.ToDomainOrderLine(m), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan order lines for %s: %w", orderID, err)
	}
	return lines, nil
}

func (r *PgxOrderRepository) collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}
	return mapping.ToDomainOrderSlice(orders), nil
}

// ListOrdersByUser retrieves the user's orders, newest first. Lines are not
// loaded for the list view.
func (r *PgxOrderRepository) ListOrdersByUser(ctx context.Context, userID string, limit int, createdBefore time.Time) ([]domain.Order, error) {
	var rows pgx.Rows
	var err error
	if createdBefore.IsZero() {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, userID, limit)
	} else {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 AND created_at < $2 ORDER BY created_at DESC LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, userID, createdBefore, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query orders for user %s: %w", userID, err)
	}
	defer rows.Close()

	return r.collectOrders(rows)
}

// ListOrdersByIDs retrieves the orders matching the given ids. Unknown ids
// are silently skipped.
func (r *PgxOrderRepository) ListOrdersByIDs(ctx context.Context, orderIDs []string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by ids: %w", err)
	}
	defer rows.Close()

	return r.collectOrders(rows)
}

// ListOrdersByFreightGroup retrieves all orders assigned to a freight group.
func (r *PgxOrderRepository) ListOrdersByFreightGroup(ctx context.Context, freightGroupID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE freight_group_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, freightGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders for freight group %s: %w", freightGroupID, err)
	}
	defer rows.Close()

	return r.collectOrders(rows)
}

// CreateOrderFromCart inserts the order with its lines and clears the source
// cart's lines in a single transaction, so the checkout either fully happens
// or not at all.
func (r *PgxOrderRepository) CreateOrderFromCart(ctx context.Context, order domain.Order, cartID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelOrder(order)
	orderInsert := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, orderInsert,
		m.OrderID,
		m.UserID,
		m.FreightGroupID,
		m.Subtotal,
		m.DeliveryFee,
		m.Total,
		m.Status,
		m.Purchased,
		m.PurchasedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", m.OrderID, err)
	}

	lineInsert := `
		INSERT INTO order_lines (order_line_id, order_id, product_id, product_name, variant_selector, quantity, final_price_at_purchase)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range order.Lines {
		ml := mapping.ToModelOrderLine(line)
		_, err = tx.Exec(ctx, lineInsert,
			ml.OrderLineID,
			ml.OrderID,
			ml.ProductID,
			ml.ProductName,
			ml.VariantSelector,
			ml.Quantity,
			ml.FinalPriceAtPurchase,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order line for product %s: %w", ml.ProductID, err)
		}
	}

	_, err = tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1;`, cartID)
	if err != nil {
		return fmt.Errorf("failed to clear cart %s after checkout: %w", cartID, err)
	}

	return r.Commit(ctx, tx)
}

// AssignFreightGroup sets the freight group and status on all given orders in
// one statement. The freight group is write-once: rows that already carry one
// are left untouched.
func (r *PgxOrderRepository) AssignFreightGroup(ctx context.Context, orderIDs []string, freightGroupID string, status domain.OrderStatus, updaterUserID string) error {
	query := `
		UPDATE orders
		SET freight_group_id = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE order_id = ANY($1) AND freight_group_id IS NULL;
	`
	_, err := r.Pool.Exec(ctx, query, orderIDs, freightGroupID, string(status), time.Now(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to assign freight group %s: %w", freightGroupID, err)
	}
	return nil
}

// UpdateDeliveryFee sets the allocated fee, the new total and the status on
// one order.
func (r *PgxOrderRepository) UpdateDeliveryFee(ctx context.Context, orderID string, fee, total decimal.Decimal, status domain.OrderStatus, updaterUserID string) error {
	query := `
		UPDATE orders
		SET delivery_fee = $2, total = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE order_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, orderID, fee, total, string(status), time.Now(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to update delivery fee for order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the order status.
func (r *PgxOrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, updaterUserID string) error {
	query := `
		UPDATE orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, orderID, string(status), time.Now(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to update status for order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetPurchased sets the purchased flag and timestamp.
func (r *PgxOrderRepository) SetPurchased(ctx context.Context, orderID string, purchased bool, purchasedAt *time.Time, updaterUserID string) error {
	query := `
		UPDATE orders
		SET purchased = $2, purchased_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE order_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, orderID, purchased, purchasedAt, time.Now(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to set purchased flag for order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
