package stock

import (
	"context"
	"time"

	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/internal/domain/repository"
)

// Repos is the set of repositories the stock service works with.
type Repos struct {
	Stores         repository.StoreRepository
	Menus          repository.MenuRepository
	Stocks         repository.StockRepository
	PurchaseOrders repository.PurchaseOrderRepository
}

// TxRunner runs fn inside one database transaction with repositories bound to it.
// Commit when fn returns nil, rollback otherwise.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// EventPublisher emits purchase-order events after commit.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.PurchaseOrderEvent) error
}

// SheetRenderer renders the open purchase-order list as a printable document.
type SheetRenderer interface {
	RenderPurchaseOrderSheet(ctx context.Context, items []dto.PurchaseOrderListItem, generatedAt time.Time) ([]byte, error)
}

// JoinMode selects how GetStockList attaches purchase orders to stocks.
type JoinMode string

const (
	// JoinPerStock attaches to every stock its own latest purchase order.
	JoinPerStock JoinMode = "per_stock"
	// JoinLegacy looks up the latest purchase order using the store id as a stock id and attaches
	// that single order to every stock of the list.
	JoinLegacy JoinMode = "legacy"
)
