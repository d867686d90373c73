package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// CreateStockRequest registers a menu as stocked by a store.
type CreateStockRequest struct {
	StoreID int64 `json:"store_id"`
	MenuID  int64 `json:"menu_id"`
}

// Validate checks both references are set.
func (r CreateStockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StoreID, validation.Required, validation.Min(1)),
		validation.Field(&r.MenuID, validation.Required, validation.Min(1)),
	)
}

// UpdateStockRequest partial update: nil fields are left untouched.
type UpdateStockRequest struct {
	StockID       int64      `json:"stock_id"`
	Quantity      *int       `json:"quantity"`
	LastStockDate *time.Time `json:"last_stock_date"`
}

// Validate rejects negative quantities.
func (r UpdateStockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StockID, validation.Required, validation.Min(1)),
		validation.Field(&r.Quantity, validation.Min(0)),
	)
}

// StockIDResponse id of a created or updated stock.
type StockIDResponse struct {
	StockID int64 `json:"stock_id"`
}

// StockListItem one stock of a store joined with a purchase order, when one was found.
type StockListItem struct {
	StockID       int64            `json:"stock_id"`
	Quantity      *int             `json:"quantity"`
	LastStockDate *time.Time       `json:"last_stock_date"`
	MenuName      string           `json:"menu_name"`
	POState       *int             `json:"po_state,omitempty"`
	POQuantity    *int             `json:"po_quantity,omitempty"`
	POPrice       *decimal.Decimal `json:"po_price,omitempty"`
}
