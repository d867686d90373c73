package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo reads the menu catalog.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository builds the menu adapter. Pass a pool or a tx.
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

const menuColumns = `id, category_id, menu_code, menu_name, price, state`

// GetByID returns (nil, nil) when the menu does not exist.
func (r *MenuRepo) GetByID(ctx context.Context, id int64) (*entity.Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus WHERE id = $1`
	var m entity.Menu
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.CategoryID, &m.Code, &m.Name, &m.Price, &m.State)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return &m, nil
}

func (r *MenuRepo) List(ctx context.Context) ([]*entity.Menu, error) {
	return r.list(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY id`)
}

func (r *MenuRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Menu, error) {
	return r.list(ctx, `SELECT `+menuColumns+` FROM menus WHERE category_id = $1 ORDER BY id`, categoryID)
}

func (r *MenuRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Menu, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Menu, 0)
	for rows.Next() {
		var m entity.Menu
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Code, &m.Name, &m.Price, &m.State); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
