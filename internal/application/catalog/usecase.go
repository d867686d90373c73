package catalog

import (
	"context"

	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/domain"
	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/internal/domain/repository"
)

// UseCase maintains menu categories and exposes the menu catalog.
type UseCase struct {
	categories repository.CategoryRepository
	menus      repository.MenuRepository
}

// NewUseCase builds the catalog use case.
func NewUseCase(categories repository.CategoryRepository, menus repository.MenuRepository) *UseCase {
	return &UseCase{categories: categories, menus: menus}
}

// CreateCategory stores a new category; state defaults to active.
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (int64, error) {
	state := entity.CategoryActive
	if in.State != nil {
		state = *in.State
	}
	c := entity.NewCategory(in.Name, state)
	if err := uc.categories.Create(ctx, c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

// UpdateCategory overwrites only the fields present in the request.
func (uc *UseCase) UpdateCategory(ctx context.Context, in dto.UpdateCategoryRequest) (int64, error) {
	c, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, domain.ErrCategoryNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.State != nil {
		c.State = *in.State
	}
	if err := uc.categories.Update(ctx, c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (uc *UseCase) GetCategory(ctx context.Context, id int64) (*dto.CategoryDto, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCategoryNotFound
	}
	out := toCategoryDto(c)
	return &out, nil
}

func (uc *UseCase) GetCategoryList(ctx context.Context) ([]dto.CategoryDto, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryDto, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryDto(c))
	}
	return out, nil
}

// DeleteCategory removes the category. A missing id is reported as success.
func (uc *UseCase) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	if err := uc.categories.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *UseCase) GetMenu(ctx context.Context, id int64) (*dto.MenuDto, error) {
	m, err := uc.menus.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMenuNotFound
	}
	out := toMenuDto(m)
	return &out, nil
}

// GetMenuList lists every menu, or only those of categoryID when it is set.
func (uc *UseCase) GetMenuList(ctx context.Context, categoryID *int64) ([]dto.MenuDto, error) {
	var (
		list []*entity.Menu
		err  error
	)
	if categoryID != nil {
		list, err = uc.menus.ListByCategory(ctx, *categoryID)
	} else {
		list, err = uc.menus.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuDto, 0, len(list))
	for _, m := range list {
		out = append(out, toMenuDto(m))
	}
	return out, nil
}

func toCategoryDto(c *entity.Category) dto.CategoryDto {
	return dto.CategoryDto{
		CategoryID:    c.ID,
		CategoryName:  c.Name,
		CategoryState: c.State,
	}
}

func toMenuDto(m *entity.Menu) dto.MenuDto {
	return dto.MenuDto{
		MenuID:     m.ID,
		CategoryID: m.CategoryID,
		MenuCode:   m.Code,
		MenuName:   m.Name,
		Price:      m.Price,
		State:      m.State,
	}
}
