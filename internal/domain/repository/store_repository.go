package repository

import (
	"context"

	"github.com/nagane/franchise-api/internal/domain/entity"
)

// StoreRepository read-only port for franchise stores.
type StoreRepository interface {
	// GetByID returns (nil, nil) when the store does not exist.
	GetByID(ctx context.Context, id int64) (*entity.Store, error)
}
