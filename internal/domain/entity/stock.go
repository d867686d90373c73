package entity

import "time"

// Stock is the on-hand record of one menu in one store.
// StoreID and MenuID are fixed at creation; Quantity and LastStockDate stay nil until first stocking.
type Stock struct {
	ID            int64
	StoreID       int64
	MenuID        int64
	Quantity      *int
	LastStockDate *time.Time
}

// NewStock builds an unsaved stock for the (store, menu) pair with nothing stocked yet.
func NewStock(storeID, menuID int64) *Stock {
	return &Stock{StoreID: storeID, MenuID: menuID}
}
