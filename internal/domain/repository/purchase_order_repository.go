package repository

import (
	"context"

	"github.com/nagane/franchise-api/internal/domain/entity"
)

// PurchaseOrderRepository persistence port for PurchaseOrder.
// "Latest" means greatest order_date, ties broken by greatest id.
type PurchaseOrderRepository interface {
	// Create inserts the order and sets ID, State and OrderDate from the stored row.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	// GetByID returns (nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	ListByState(ctx context.Context, state int) ([]*entity.PurchaseOrder, error)
	// LatestByStock returns (nil, nil) when the stock has no orders.
	LatestByStock(ctx context.Context, stockID int64) (*entity.PurchaseOrder, error)
	// LatestByStore returns the latest order of every stock of the store that has one.
	LatestByStore(ctx context.Context, storeID int64) ([]*entity.PurchaseOrder, error)
	UpdateState(ctx context.Context, id int64, state int) error
	// Delete removes the row; deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error
}
