package domain

import (
	"fmt"
	"strings"
	"time"
)

// InventoryItem is a single stock record keyed by SKU.
type InventoryItem struct {
	SKU         string
	ProductName string
	Quantity    int
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Key returns the unique record identifier.
func (i *InventoryItem) Key() string { return i.SKU }

func (i *InventoryItem) Validate() error {
	if strings.TrimSpace(i.SKU) == "" {
		return fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if strings.TrimSpace(i.ProductName) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if i.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if i.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return nil
}
