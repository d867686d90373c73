package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderInProgress marks orders still open at a table.
const OrderInProgress = 0

// Order is a point-of-sale order placed at a store table.
type Order struct {
	ID            int64
	StoreID       int64
	TableID       int64
	Amount        decimal.Decimal
	OrderDate     time.Time
	State         int
	PaymentMethod string
	UpdatedDate   time.Time
	Lines         []OrderLine
}

// OrderLine is one menu of an order, with the menu name resolved.
type OrderLine struct {
	MenuID   int64
	MenuName string
	Quantity int
}
