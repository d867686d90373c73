package repository

import (
	"context"

	"github.com/nagane/franchise-api/internal/domain/entity"
)

// OrderRepository read port for point-of-sale orders.
type OrderRepository interface {
	// ListByStoreAndState returns the store's orders in the given state, lines included.
	ListByStoreAndState(ctx context.Context, storeID int64, state int) ([]*entity.Order, error)
}
