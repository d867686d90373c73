package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest orders more of a stock.
type CreatePurchaseOrderRequest struct {
	StockID  int64           `json:"stock_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Validate requires a stock, a positive quantity and a non-negative price.
func (r CreatePurchaseOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StockID, validation.Required, validation.Min(1)),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&r.Price, validation.By(nonNegativeDecimal)),
	)
}

// UpdatePurchaseOrderRequest sets the state of a purchase order. Any integer is accepted.
type UpdatePurchaseOrderRequest struct {
	OrderID int64 `json:"purchase_order_id"`
	State   *int  `json:"state"`
}

// Validate requires the state to be present (0 is a valid state).
func (r UpdatePurchaseOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderID, validation.Required, validation.Min(1)),
		validation.Field(&r.State, validation.NotNil),
	)
}

// PurchaseOrderIDResponse id of a created or updated purchase order.
type PurchaseOrderIDResponse struct {
	PurchaseOrderID int64 `json:"purchase_order_id"`
}

// PurchaseOrderListItem one open purchase order with its store and menu codes.
type PurchaseOrderListItem struct {
	PurchaseOrderID int64           `json:"purchase_order_id"`
	StockID         int64           `json:"stock_id"`
	Quantity        int             `json:"quantity"`
	OrderDate       time.Time       `json:"order_date"`
	Price           decimal.Decimal `json:"price"`
	StoreCode       string          `json:"store_code"`
	MenuCode        string          `json:"menu_code"`
}
