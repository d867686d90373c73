package dto

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeletedResponse body returned by delete endpoints.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal")
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}
