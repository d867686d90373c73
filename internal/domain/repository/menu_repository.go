package repository

import (
	"context"

	"github.com/nagane/franchise-api/internal/domain/entity"
)

// MenuRepository read-only port for catalog menus.
type MenuRepository interface {
	// GetByID returns (nil, nil) when the menu does not exist.
	GetByID(ctx context.Context, id int64) (*entity.Menu, error)
	List(ctx context.Context) ([]*entity.Menu, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Menu, error)
}
