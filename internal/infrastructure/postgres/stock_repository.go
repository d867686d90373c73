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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo persists store stock (usable with pool or tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the stock adapter. Pass a pool or a tx.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create inserts the stock and sets its ID.
func (r *StockRepo) Create(ctx context.Context, s *entity.Stock) error {
	query := `
		INSERT INTO stocks (store_id, menu_id, quantity, last_stock_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, s.StoreID, s.MenuID, s.Quantity, s.LastStockDate).Scan(&s.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when the stock does not exist.
func (r *StockRepo) GetByID(ctx context.Context, id int64) (*entity.Stock, error) {
	query := `
		SELECT id, store_id, menu_id, quantity, last_stock_date
		FROM stocks WHERE id = $1`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.StoreID, &s.MenuID, &s.Quantity, &s.LastStockDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// ListByStore returns the store's stocks ordered by id.
func (r *StockRepo) ListByStore(ctx context.Context, storeID int64) ([]*entity.Stock, error) {
	query := `
		SELECT id, store_id, menu_id, quantity, last_stock_date
		FROM stocks WHERE store_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Stock, 0)
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.StoreID, &s.MenuID, &s.Quantity, &s.LastStockDate); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update writes quantity and last stock date; store and menu are never reassigned.
func (r *StockRepo) Update(ctx context.Context, s *entity.Stock) error {
	query := `UPDATE stocks SET quantity = $2, last_stock_date = $3 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Quantity, s.LastStockDate); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Delete fails with ErrConflict while purchase orders still reference the stock.
func (r *StockRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stocks WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}
