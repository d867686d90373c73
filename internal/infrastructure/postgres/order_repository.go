package postgres

import (
	"context"
	"fmt"

	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo reads point-of-sale orders.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the order adapter. Pass a pool or a tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// ListByStoreAndState loads the orders and then their lines with menu names in a second query.
func (r *OrderRepo) ListByStoreAndState(ctx context.Context, storeID int64, state int) ([]*entity.Order, error) {
	query := `
		SELECT id, store_id, table_id, amount, order_date, state, payment_method, updated_date
		FROM orders
		WHERE store_id = $1 AND state = $2
		ORDER BY order_date, id`
	rows, err := r.q.Query(ctx, query, storeID, state)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	list := make([]*entity.Order, 0)
	byID := make(map[int64]*entity.Order)
	ids := make([]int64, 0)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.StoreID, &o.TableID, &o.Amount, &o.OrderDate, &o.State, &o.PaymentMethod, &o.UpdatedDate); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Lines = make([]entity.OrderLine, 0)
		list = append(list, &o)
		byID[o.ID] = &o
		ids = append(ids, o.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	lineQuery := `
		SELECT om.order_id, om.menu_id, m.menu_name, om.quantity
		FROM order_menus om
		JOIN menus m ON m.id = om.menu_id
		WHERE om.order_id = ANY($1)
		ORDER BY om.order_id, om.menu_id`
	lines, err := r.q.Query(ctx, lineQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer lines.Close()
	for lines.Next() {
		var orderID int64
		var l entity.OrderLine
		if err := lines.Scan(&orderID, &l.MenuID, &l.MenuName, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}
	return list, lines.Err()
}
