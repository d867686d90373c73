package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nagane/franchise-api/internal/application/stock"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, calls fn with repositories bound to it and commits, or rolls back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(repos stock.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(StockRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// StockRepos returns the stock service repositories over q (pool or tx).
func StockRepos(q Querier) stock.Repos {
	return stock.Repos{
		Stores:         NewStoreRepository(q),
		Menus:          NewMenuRepository(q),
		Stocks:         NewStockRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
	}
}
