package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderResponse a current order of a store table.
type OrderResponse struct {
	OrderNo       int64               `json:"order_no"`
	Amount        decimal.Decimal     `json:"amount"`
	OrderDate     time.Time           `json:"order_date"`
	State         int                 `json:"state"`
	PaymentMethod string              `json:"payment_method"`
	UpdatedDate   time.Time           `json:"updated_date"`
	TableNo       int64               `json:"table_no"`
	OrderMenuList []OrderMenuResponse `json:"order_menu_list"`
}

// OrderMenuResponse one menu line of an order.
type OrderMenuResponse struct {
	MenuNo   int64  `json:"menu_no"`
	MenuName string `json:"menu_name"`
	Quantity int    `json:"quantity"`
}
