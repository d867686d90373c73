package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nagane/franchise-api/internal/domain"
	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo persists purchase orders (usable with pool or tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository builds the purchase order adapter. Pass a pool or a tx.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `po.id, po.stock_id, po.quantity, po.price, po.state, po.order_date`

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	if err := row.Scan(&po.ID, &po.StockID, &po.Quantity, &po.Price, &po.State, &po.OrderDate); err != nil {
		return nil, err
	}
	return &po, nil
}

// Create inserts the order; state and order_date come from the column defaults.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (stock_id, quantity, price)
		VALUES ($1, $2, $3)
		RETURNING id, state, order_date`
	err := r.q.QueryRow(ctx, query, po.StockID, po.Quantity, po.Price).Scan(&po.ID, &po.State, &po.OrderDate)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when the order does not exist.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders po WHERE po.id = $1`
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

func (r *PurchaseOrderRepo) ListByState(ctx context.Context, state int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders po WHERE po.state = $1 ORDER BY po.id`
	return r.list(ctx, "list purchase orders", query, state)
}

// LatestByStock returns (nil, nil) when the stock has no orders.
func (r *PurchaseOrderRepo) LatestByStock(ctx context.Context, stockID int64) (*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders po
		WHERE po.stock_id = $1
		ORDER BY po.order_date DESC, po.id DESC
		LIMIT 1`
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, stockID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest purchase order: %w", err)
	}
	return po, nil
}

// LatestByStore picks one order per stock of the store with DISTINCT ON.
func (r *PurchaseOrderRepo) LatestByStore(ctx context.Context, storeID int64) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT DISTINCT ON (po.stock_id) ` + purchaseOrderColumns + `
		FROM purchase_orders po
		JOIN stocks s ON s.id = po.stock_id
		WHERE s.store_id = $1
		ORDER BY po.stock_id, po.order_date DESC, po.id DESC`
	return r.list(ctx, "latest purchase orders by store", query, storeID)
}

// UpdateState writes the state as given.
func (r *PurchaseOrderRepo) UpdateState(ctx context.Context, id int64, state int) error {
	if _, err := r.q.Exec(ctx, `UPDATE purchase_orders SET state = $2 WHERE id = $1`, id, state); err != nil {
		return fmt.Errorf("update purchase order state: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	list := make([]*entity.PurchaseOrder, 0)
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}
