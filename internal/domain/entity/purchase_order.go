package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderOpen is the state assigned on creation. It is the only state with query semantics;
// other codes (fulfilled, cancelled, ...) are written as given.
const PurchaseOrderOpen = 0

// PurchaseOrder is a replenishment request for one stock.
// OrderDate is set by the store on insert and never changes; only State is mutable.
type PurchaseOrder struct {
	ID        int64
	StockID   int64
	Quantity  int
	Price     decimal.Decimal
	State     int
	OrderDate time.Time
}

// NewPurchaseOrder builds an unsaved purchase order. State and OrderDate are assigned on insert.
func NewPurchaseOrder(stockID int64, quantity int, price decimal.Decimal) *PurchaseOrder {
	return &PurchaseOrder{StockID: stockID, Quantity: quantity, Price: price}
}

// Purchase order event types.
const (
	PurchaseOrderCreated      = "purchase_order.created"
	PurchaseOrderStateChanged = "purchase_order.state_changed"
)

// PurchaseOrderEvent is published after a purchase order is committed.
type PurchaseOrderEvent struct {
	Type            string          `json:"type"`
	PurchaseOrderID int64           `json:"purchase_order_id"`
	StockID         int64           `json:"stock_id"`
	State           int             `json:"state"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// NewPurchaseOrderEvent snapshots po into an event of the given type.
func NewPurchaseOrderEvent(eventType string, po *PurchaseOrder, at time.Time) PurchaseOrderEvent {
	return PurchaseOrderEvent{
		Type:            eventType,
		PurchaseOrderID: po.ID,
		StockID:         po.StockID,
		State:           po.State,
		Quantity:        po.Quantity,
		Price:           po.Price,
		OccurredAt:      at,
	}
}
