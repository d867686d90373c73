package repository

import (
	"context"

	"github.com/nagane/franchise-api/internal/domain/entity"
)

// StockRepository persistence port for Stock, keyed by id and listed by store.
type StockRepository interface {
	// Create inserts the stock and sets its generated ID.
	Create(ctx context.Context, stock *entity.Stock) error
	// GetByID returns (nil, nil) when the stock does not exist.
	GetByID(ctx context.Context, id int64) (*entity.Stock, error)
	ListByStore(ctx context.Context, storeID int64) ([]*entity.Stock, error)
	// Update writes quantity and last stock date as they are on the entity.
	Update(ctx context.Context, stock *entity.Stock) error
	// Delete removes the row; deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error
}
