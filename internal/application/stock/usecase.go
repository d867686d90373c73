package stock

import (
	"context"
	"time"

	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/domain"
	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/pkg/logger"
)

// UseCase manages store stock and the purchase orders that replenish it.
// Mutations run through TxRunner (one transaction per call); reads use repos directly.
type UseCase struct {
	repos  Repos
	tx     TxRunner
	events EventPublisher
	sheet  SheetRenderer
	join   JoinMode
	log    *logger.Logger
	now    func() time.Time
}

// NewUseCase builds the stock use case. events may be nil (no publishing).
func NewUseCase(repos Repos, tx TxRunner, events EventPublisher, sheet SheetRenderer, join JoinMode, log *logger.Logger) *UseCase {
	if join == "" {
		join = JoinPerStock
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repos:  repos,
		tx:     tx,
		events: events,
		sheet:  sheet,
		join:   join,
		log:    log,
		now:    time.Now,
	}
}

// CreateStock registers the menu as stocked by the store and returns the new stock id.
// Nothing is written when the store or the menu does not exist.
func (uc *UseCase) CreateStock(ctx context.Context, in dto.CreateStockRequest) (int64, error) {
	var id int64
	err := uc.tx.Run(ctx, func(r Repos) error {
		store, err := r.Stores.GetByID(ctx, in.StoreID)
		if err != nil {
			return err
		}
		if store == nil {
			return domain.ErrStoreNotFound
		}
		menu, err := r.Menus.GetByID(ctx, in.MenuID)
		if err != nil {
			return err
		}
		if menu == nil {
			return domain.ErrMenuNotFound
		}

		stock := entity.NewStock(store.ID, menu.ID)
		if err := r.Stocks.Create(ctx, stock); err != nil {
			return err
		}
		id = stock.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Debug().Int64("stock_id", id).Int64("store_id", in.StoreID).Int64("menu_id", in.MenuID).Msg("stock created")
	return id, nil
}

// UpdateStock overwrites only the fields present in the request; nil fields keep their value.
// A request with no fields still saves and returns the id.
func (uc *UseCase) UpdateStock(ctx context.Context, in dto.UpdateStockRequest) (int64, error) {
	err := uc.tx.Run(ctx, func(r Repos) error {
		stock, err := r.Stocks.GetByID(ctx, in.StockID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrStockNotFound
		}
		if in.Quantity != nil {
			q := *in.Quantity
			stock.Quantity = &q
		}
		if in.LastStockDate != nil {
			d := *in.LastStockDate
			stock.LastStockDate = &d
		}
		return r.Stocks.Update(ctx, stock)
	})
	if err != nil {
		return 0, err
	}
	return in.StockID, nil
}

// GetStockList lists the stocks of a store with their menu name and purchase order data.
// A store without stock yields an empty list.
func (uc *UseCase) GetStockList(ctx context.Context, storeID int64) ([]dto.StockListItem, error) {
	latest, err := uc.purchaseOrderLookup(ctx, storeID)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.repos.Stocks.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	menus := make(map[int64]*entity.Menu)
	items := make([]dto.StockListItem, 0, len(stocks))
	for _, s := range stocks {
		menu, err := uc.menu(ctx, menus, s.MenuID)
		if err != nil {
			return nil, err
		}
		items = append(items, toStockListItem(s, menu, latest(s.ID)))
	}
	return items, nil
}

// purchaseOrderLookup resolves, per join mode, which purchase order goes with each stock of the store.
func (uc *UseCase) purchaseOrderLookup(ctx context.Context, storeID int64) (func(stockID int64) *entity.PurchaseOrder, error) {
	if uc.join == JoinLegacy {
		po, err := uc.repos.PurchaseOrders.LatestByStock(ctx, storeID)
		if err != nil {
			return nil, err
		}
		return func(int64) *entity.PurchaseOrder { return po }, nil
	}

	list, err := uc.repos.PurchaseOrders.LatestByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	byStock := make(map[int64]*entity.PurchaseOrder, len(list))
	for _, po := range list {
		byStock[po.StockID] = po
	}
	return func(stockID int64) *entity.PurchaseOrder { return byStock[stockID] }, nil
}

// DeleteStock removes the stock. A missing id is reported as success.
func (uc *UseCase) DeleteStock(ctx context.Context, stockID int64) (bool, error) {
	if err := uc.repos.Stocks.Delete(ctx, stockID); err != nil {
		return false, err
	}
	return true, nil
}

// CreatePurchaseOrder orders quantity units of the stock at price. The store assigns the open state
// and the order date.
func (uc *UseCase) CreatePurchaseOrder(ctx context.Context, in dto.CreatePurchaseOrderRequest) (int64, error) {
	var po *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(r Repos) error {
		stock, err := r.Stocks.GetByID(ctx, in.StockID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrStockNotFound
		}
		po = entity.NewPurchaseOrder(stock.ID, in.Quantity, in.Price)
		return r.PurchaseOrders.Create(ctx, po)
	})
	if err != nil {
		return 0, err
	}
	uc.publish(ctx, entity.PurchaseOrderCreated, po)
	return po.ID, nil
}

// UpdatePurchaseOrder writes the state unconditionally, even when it is unchanged.
// Transitions are not validated.
func (uc *UseCase) UpdatePurchaseOrder(ctx context.Context, in dto.UpdatePurchaseOrderRequest) (int64, error) {
	if in.State == nil {
		return 0, domain.ErrInvalidInput
	}
	state := *in.State

	var po *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(r Repos) error {
		found, err := r.PurchaseOrders.GetByID(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrPurchaseOrderNotFound
		}
		if err := r.PurchaseOrders.UpdateState(ctx, found.ID, state); err != nil {
			return err
		}
		found.State = state
		po = found
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.publish(ctx, entity.PurchaseOrderStateChanged, po)
	return po.ID, nil
}

// GetPurchaseOrderList lists the open purchase orders of every store.
func (uc *UseCase) GetPurchaseOrderList(ctx context.Context) ([]dto.PurchaseOrderListItem, error) {
	orders, err := uc.repos.PurchaseOrders.ListByState(ctx, entity.PurchaseOrderOpen)
	if err != nil {
		return nil, err
	}

	stocks := make(map[int64]*entity.Stock)
	stores := make(map[int64]*entity.Store)
	menus := make(map[int64]*entity.Menu)
	items := make([]dto.PurchaseOrderListItem, 0, len(orders))
	for _, po := range orders {
		stock, ok := stocks[po.StockID]
		if !ok {
			stock, err = uc.repos.Stocks.GetByID(ctx, po.StockID)
			if err != nil {
				return nil, err
			}
			if stock == nil {
				return nil, domain.ErrStockNotFound
			}
			stocks[po.StockID] = stock
		}
		store, ok := stores[stock.StoreID]
		if !ok {
			store, err = uc.repos.Stores.GetByID(ctx, stock.StoreID)
			if err != nil {
				return nil, err
			}
			if store == nil {
				return nil, domain.ErrStoreNotFound
			}
			stores[stock.StoreID] = store
		}
		menu, err := uc.menu(ctx, menus, stock.MenuID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.PurchaseOrderListItem{
			PurchaseOrderID: po.ID,
			StockID:         po.StockID,
			Quantity:        po.Quantity,
			OrderDate:       po.OrderDate,
			Price:           po.Price,
			StoreCode:       store.Code,
			MenuCode:        menu.Code,
		})
	}
	return items, nil
}

// DeletePurchaseOrder removes the purchase order. A missing id is reported as success.
func (uc *UseCase) DeletePurchaseOrder(ctx context.Context, orderID int64) (bool, error) {
	if err := uc.repos.PurchaseOrders.Delete(ctx, orderID); err != nil {
		return false, err
	}
	return true, nil
}

// PurchaseOrderSheet renders the open purchase orders as a document for the supply team.
func (uc *UseCase) PurchaseOrderSheet(ctx context.Context) ([]byte, error) {
	items, err := uc.GetPurchaseOrderList(ctx)
	if err != nil {
		return nil, err
	}
	return uc.sheet.RenderPurchaseOrderSheet(ctx, items, uc.now())
}

// StoreOfStock returns the store owning the stock. ok is false when the stock does not exist.
func (uc *UseCase) StoreOfStock(ctx context.Context, stockID int64) (storeID int64, ok bool, err error) {
	s, err := uc.repos.Stocks.GetByID(ctx, stockID)
	if err != nil || s == nil {
		return 0, false, err
	}
	return s.StoreID, true, nil
}

// StoreOfPurchaseOrder returns the store whose stock the purchase order replenishes.
// ok is false when the order or its stock does not exist.
func (uc *UseCase) StoreOfPurchaseOrder(ctx context.Context, orderID int64) (storeID int64, ok bool, err error) {
	po, err := uc.repos.PurchaseOrders.GetByID(ctx, orderID)
	if err != nil || po == nil {
		return 0, false, err
	}
	return uc.StoreOfStock(ctx, po.StockID)
}

func (uc *UseCase) menu(ctx context.Context, cache map[int64]*entity.Menu, id int64) (*entity.Menu, error) {
	if m, ok := cache[id]; ok {
		return m, nil
	}
	m, err := uc.repos.Menus.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMenuNotFound
	}
	cache[id] = m
	return m, nil
}

func (uc *UseCase) publish(ctx context.Context, eventType string, po *entity.PurchaseOrder) {
	if uc.events == nil {
		return
	}
	ev := entity.NewPurchaseOrderEvent(eventType, po, uc.now())
	if err := uc.events.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).
			Str("type", eventType).
			Int64("purchase_order_id", po.ID).
			Msg("purchase order event not published")
	}
}

func toStockListItem(s *entity.Stock, menu *entity.Menu, po *entity.PurchaseOrder) dto.StockListItem {
	item := dto.StockListItem{
		StockID:       s.ID,
		Quantity:      s.Quantity,
		LastStockDate: s.LastStockDate,
		MenuName:      menu.Name,
	}
	if po != nil {
		state, qty, price := po.State, po.Quantity, po.Price
		item.POState = &state
		item.POQuantity = &qty
		item.POPrice = &price
	}
	return item
}
