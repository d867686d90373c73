package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest input for a new category. State defaults to active.
type CreateCategoryRequest struct {
	Name  string `json:"category_name"`
	State *int   `json:"category_state"`
}

// Validate requires a name.
func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

// UpdateCategoryRequest partial update: nil fields are left untouched.
type UpdateCategoryRequest struct {
	CategoryID int64   `json:"category_no"`
	Name       *string `json:"category_name"`
	State      *int    `json:"category_state"`
}

// Validate rejects an empty name when one is given.
func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID, validation.Required, validation.Min(1)),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// CategoryDto category details.
type CategoryDto struct {
	CategoryID    int64  `json:"category_no"`
	CategoryName  string `json:"category_name"`
	CategoryState int    `json:"category_state"`
}

// CategoryIDResponse id of a created or updated category.
type CategoryIDResponse struct {
	CategoryID int64 `json:"category_no"`
}

// MenuDto menu details.
type MenuDto struct {
	MenuID     int64           `json:"menu_no"`
	CategoryID int64           `json:"category_no"`
	MenuCode   string          `json:"menu_code"`
	MenuName   string          `json:"menu_name"`
	Price      decimal.Decimal `json:"price"`
	State      int             `json:"state"`
}
