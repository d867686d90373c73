package entity

import "github.com/shopspring/decimal"

// Menu is a sellable item of the franchise catalog.
type Menu struct {
	ID         int64
	CategoryID int64
	Code       string
	Name       string
	Price      decimal.Decimal
	State      int
}
