package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflicts with current state")
)

// NotFound variants; all of them satisfy errors.Is(err, ErrNotFound).
var (
	ErrStoreNotFound         = fmt.Errorf("store: %w", ErrNotFound)
	ErrMenuNotFound          = fmt.Errorf("menu: %w", ErrNotFound)
	ErrCategoryNotFound      = fmt.Errorf("category: %w", ErrNotFound)
	ErrStockNotFound         = fmt.Errorf("stock: %w", ErrNotFound)
	ErrPurchaseOrderNotFound = fmt.Errorf("purchase order: %w", ErrNotFound)
)
