// Package memory implements the repository ports over in-process maps.
// It backs DB_DRIVER=memory runs and the service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nagane/franchise-api/internal/application/stock"
	"github.com/nagane/franchise-api/internal/domain/entity"
)

// DB holds every table. Repositories share it; TxRunner serializes transactions and restores a
// snapshot when the callback fails.
type DB struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	stores         map[int64]entity.Store
	menus          map[int64]entity.Menu
	categories     map[int64]entity.Category
	stocks         map[int64]entity.Stock
	purchaseOrders map[int64]entity.PurchaseOrder
	orders         map[int64]entity.Order
	seq            map[string]int64

	// Clock stamps purchase order dates.
	Clock func() time.Time
}

// NewDB returns an empty database.
func NewDB() *DB {
	return &DB{
		stores:         make(map[int64]entity.Store),
		menus:          make(map[int64]entity.Menu),
		categories:     make(map[int64]entity.Category),
		stocks:         make(map[int64]entity.Stock),
		purchaseOrders: make(map[int64]entity.PurchaseOrder),
		orders:         make(map[int64]entity.Order),
		seq:            make(map[string]int64),
		Clock:          time.Now,
	}
}

func (db *DB) nextID(table string) int64 {
	db.seq[table]++
	return db.seq[table]
}

// bump keeps the sequence ahead of explicitly seeded ids.
func (db *DB) bump(table string, id int64) {
	if id > db.seq[table] {
		db.seq[table] = id
	}
}

// SeedStore inserts a store; a zero ID gets the next sequence value.
func (db *DB) SeedStore(s entity.Store) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if s.ID == 0 {
		s.ID = db.nextID("stores")
	}
	db.bump("stores", s.ID)
	db.stores[s.ID] = s
	return s.ID
}

// SeedMenu inserts a menu; a zero ID gets the next sequence value.
func (db *DB) SeedMenu(m entity.Menu) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if m.ID == 0 {
		m.ID = db.nextID("menus")
	}
	db.bump("menus", m.ID)
	db.menus[m.ID] = m
	return m.ID
}

// SeedCategory inserts a category; a zero ID gets the next sequence value.
func (db *DB) SeedCategory(c entity.Category) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if c.ID == 0 {
		c.ID = db.nextID("categories")
	}
	db.bump("categories", c.ID)
	db.categories[c.ID] = c
	return c.ID
}

// SeedOrder inserts a point-of-sale order; a zero ID gets the next sequence value.
func (db *DB) SeedOrder(o entity.Order) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if o.ID == 0 {
		o.ID = db.nextID("orders")
	}
	db.bump("orders", o.ID)
	o.Lines = append([]entity.OrderLine(nil), o.Lines...)
	db.orders[o.ID] = o
	return o.ID
}

// StockRepos returns the repositories used by the stock use case.
func (db *DB) StockRepos() stock.Repos {
	return stock.Repos{
		Stores:         NewStoreRepository(db),
		Menus:          NewMenuRepository(db),
		Stocks:         NewStockRepository(db),
		PurchaseOrders: NewPurchaseOrderRepository(db),
	}
}

type snapshot struct {
	stocks         map[int64]entity.Stock
	purchaseOrders map[int64]entity.PurchaseOrder
	categories     map[int64]entity.Category
	seq            map[string]int64
}

func (db *DB) snapshot() snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return snapshot{
		stocks:         cloneMap(db.stocks),
		purchaseOrders: cloneMap(db.purchaseOrders),
		categories:     cloneMap(db.categories),
		seq:            cloneMap(db.seq),
	}
}

func (db *DB) restore(s snapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.stocks = s.stocks
	db.purchaseOrders = s.purchaseOrders
	db.categories = s.categories
	db.seq = s.seq
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner runs one callback at a time and rolls back the mutable tables on error.
type TxRunner struct {
	db *DB
}

// NewTxRunner builds the runner over db.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run executes fn with repositories over db.
func (r *TxRunner) Run(ctx context.Context, fn func(repos stock.Repos) error) error {
	r.db.txMu.Lock()
	defer r.db.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := r.db.snapshot()
	if err := fn(r.db.StockRepos()); err != nil {
		r.db.restore(snap)
		return err
	}
	return nil
}
