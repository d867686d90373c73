package memory

import (
	"context"
	"sort"

	"github.com/nagane/franchise-api/internal/domain"
	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/internal/domain/repository"
)

var (
	_ repository.StoreRepository         = (*StoreRepo)(nil)
	_ repository.MenuRepository          = (*MenuRepo)(nil)
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
)

// ---- Store ----

// StoreRepo in-memory StoreRepository.
type StoreRepo struct{ db *DB }

// NewStoreRepository builds the store adapter.
func NewStoreRepository(db *DB) *StoreRepo { return &StoreRepo{db: db} }

// GetByID returns (nil, nil) when absent.
func (r *StoreRepo) GetByID(_ context.Context, id int64) (*entity.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// ---- Menu ----

// MenuRepo in-memory MenuRepository.
type MenuRepo struct{ db *DB }

// NewMenuRepository builds the menu adapter.
func NewMenuRepository(db *DB) *MenuRepo { return &MenuRepo{db: db} }

// GetByID returns (nil, nil) when absent.
func (r *MenuRepo) GetByID(_ context.Context, id int64) (*entity.Menu, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	m, ok := r.db.menus[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// List returns every menu ordered by id.
func (r *MenuRepo) List(_ context.Context) ([]*entity.Menu, error) {
	return r.filter(func(entity.Menu) bool { return true }), nil
}

// ListByCategory returns the menus of a category ordered by id.
func (r *MenuRepo) ListByCategory(_ context.Context, categoryID int64) ([]*entity.Menu, error) {
	return r.filter(func(m entity.Menu) bool { return m.CategoryID == categoryID }), nil
}

func (r *MenuRepo) filter(keep func(entity.Menu) bool) []*entity.Menu {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	list := make([]*entity.Menu, 0)
	for _, m := range r.db.menus {
		if keep(m) {
			m := m
			list = append(list, &m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// ---- Category ----

// CategoryRepo in-memory CategoryRepository.
type CategoryRepo struct{ db *DB }

// NewCategoryRepository builds the category adapter.
func NewCategoryRepository(db *DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Create assigns the next id.
func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID = r.db.nextID("categories")
	r.db.categories[c.ID] = *c
	return nil
}

// GetByID returns (nil, nil) when absent.
func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// List returns every category ordered by id.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Update overwrites name and state.
func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[c.ID]; !ok {
		return nil
	}
	r.db.categories[c.ID] = *c
	return nil
}

// Delete refuses to remove a category that still has menus.
func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, m := range r.db.menus {
		if m.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.categories, id)
	return nil
}

// ---- Stock ----

// StockRepo in-memory StockRepository.
type StockRepo struct{ db *DB }

// NewStockRepository builds the stock adapter.
func NewStockRepository(db *DB) *StockRepo { return &StockRepo{db: db} }

// Create assigns the next id. Store and menu must exist.
func (r *StockRepo) Create(_ context.Context, s *entity.Stock) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stores[s.StoreID]; !ok {
		return domain.ErrConflict
	}
	if _, ok := r.db.menus[s.MenuID]; !ok {
		return domain.ErrConflict
	}
	s.ID = r.db.nextID("stocks")
	r.db.stocks[s.ID] = copyStock(*s)
	return nil
}

// GetByID returns (nil, nil) when absent.
func (r *StockRepo) GetByID(_ context.Context, id int64) (*entity.Stock, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.stocks[id]
	if !ok {
		return nil, nil
	}
	s = copyStock(s)
	return &s, nil
}

// ListByStore returns the store's stocks ordered by id.
func (r *StockRepo) ListByStore(_ context.Context, storeID int64) ([]*entity.Stock, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	list := make([]*entity.Stock, 0)
	for _, s := range r.db.stocks {
		if s.StoreID == storeID {
			s := copyStock(s)
			list = append(list, &s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Update writes quantity and last stock date.
func (r *StockRepo) Update(_ context.Context, s *entity.Stock) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.stocks[s.ID]
	if !ok {
		return nil
	}
	cur.Quantity = s.Quantity
	cur.LastStockDate = s.LastStockDate
	r.db.stocks[s.ID] = copyStock(cur)
	return nil
}

// Delete refuses to remove a stock referenced by purchase orders.
func (r *StockRepo) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, po := range r.db.purchaseOrders {
		if po.StockID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.stocks, id)
	return nil
}

func copyStock(s entity.Stock) entity.Stock {
	if s.Quantity != nil {
		q := *s.Quantity
		s.Quantity = &q
	}
	if s.LastStockDate != nil {
		d := *s.LastStockDate
		s.LastStockDate = &d
	}
	return s
}

// ---- PurchaseOrder ----

// PurchaseOrderRepo in-memory PurchaseOrderRepository.
type PurchaseOrderRepo struct{ db *DB }

// NewPurchaseOrderRepository builds the purchase order adapter.
func NewPurchaseOrderRepository(db *DB) *PurchaseOrderRepo { return &PurchaseOrderRepo{db: db} }

// Create assigns id, the open state and the order date.
func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stocks[po.StockID]; !ok {
		return domain.ErrConflict
	}
	po.ID = r.db.nextID("purchase_orders")
	po.State = entity.PurchaseOrderOpen
	po.OrderDate = r.db.Clock()
	r.db.purchaseOrders[po.ID] = *po
	return nil
}

// GetByID returns (nil, nil) when absent.
func (r *PurchaseOrderRepo) GetByID(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	po, ok := r.db.purchaseOrders[id]
	if !ok {
		return nil, nil
	}
	return &po, nil
}

// ListByState returns the orders in state ordered by id.
func (r *PurchaseOrderRepo) ListByState(_ context.Context, state int) ([]*entity.PurchaseOrder, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	list := make([]*entity.PurchaseOrder, 0)
	for _, po := range r.db.purchaseOrders {
		if po.State == state {
			po := po
			list = append(list, &po)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// LatestByStock returns (nil, nil) when the stock has no orders.
func (r *PurchaseOrderRepo) LatestByStock(_ context.Context, stockID int64) (*entity.PurchaseOrder, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var latest *entity.PurchaseOrder
	for _, po := range r.db.purchaseOrders {
		if po.StockID != stockID {
			continue
		}
		if latest == nil || newer(po, *latest) {
			po := po
			latest = &po
		}
	}
	return latest, nil
}

// LatestByStore returns the latest order of each stock of the store.
func (r *PurchaseOrderRepo) LatestByStore(_ context.Context, storeID int64) ([]*entity.PurchaseOrder, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	latest := make(map[int64]entity.PurchaseOrder)
	for _, po := range r.db.purchaseOrders {
		s, ok := r.db.stocks[po.StockID]
		if !ok || s.StoreID != storeID {
			continue
		}
		if cur, ok := latest[po.StockID]; !ok || newer(po, cur) {
			latest[po.StockID] = po
		}
	}
	list := make([]*entity.PurchaseOrder, 0, len(latest))
	for _, po := range latest {
		po := po
		list = append(list, &po)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StockID < list[j].StockID })
	return list, nil
}

func newer(a, b entity.PurchaseOrder) bool {
	if !a.OrderDate.Equal(b.OrderDate) {
		return a.OrderDate.After(b.OrderDate)
	}
	return a.ID > b.ID
}

// UpdateState overwrites the state.
func (r *PurchaseOrderRepo) UpdateState(_ context.Context, id int64, state int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	po, ok := r.db.purchaseOrders[id]
	if !ok {
		return nil
	}
	po.State = state
	r.db.purchaseOrders[id] = po
	return nil
}

// Delete removes the order if present.
func (r *PurchaseOrderRepo) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.purchaseOrders, id)
	return nil
}

// ---- Order ----

// OrderRepo in-memory OrderRepository.
type OrderRepo struct{ db *DB }

// NewOrderRepository builds the order adapter.
func NewOrderRepository(db *DB) *OrderRepo { return &OrderRepo{db: db} }

// ListByStoreAndState returns matching orders ordered by order date, lines included.
func (r *OrderRepo) ListByStoreAndState(_ context.Context, storeID int64, state int) ([]*entity.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	list := make([]*entity.Order, 0)
	for _, o := range r.db.orders {
		if o.StoreID != storeID || o.State != state {
			continue
		}
		o.Lines = append([]entity.OrderLine(nil), o.Lines...)
		for i := range o.Lines {
			if m, ok := r.db.menus[o.Lines[i].MenuID]; ok {
				o.Lines[i].MenuName = m.Name
			}
		}
		o := o
		list = append(list, &o)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].OrderDate.Before(list[j].OrderDate)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}
