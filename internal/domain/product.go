package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProductCategory discriminates the closed set of catalog product shapes.
type ProductCategory string

const (
	CategoryElectronics ProductCategory = "ELECTRONICS"
	CategoryClothing    ProductCategory = "CLOTHING"
	CategoryGrocery     ProductCategory = "GROCERY"
)

func (c ProductCategory) String() string { return string(c) }

func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryGrocery:
		return true
	}
	return false
}

func ParseProductCategory(s string) (ProductCategory, error) {
	c := ProductCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: invalid product category %q", ErrValidation, s)
	}
	return c, nil
}

// ProductStatus represents catalog availability.
type ProductStatus string

const (
	ProductAvailable    ProductStatus = "AVAILABLE"
	ProductOutOfStock   ProductStatus = "OUT_OF_STOCK"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
)

func (s ProductStatus) String() string { return string(s) }

func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductAvailable, ProductOutOfStock, ProductDiscontinued:
		return true
	}
	return false
}

func ParseProductStatus(s string) (ProductStatus, error) {
	st := ProductStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: invalid product status %q", ErrValidation, s)
	}
	return st, nil
}

// ElectronicsDetail carries the electronics-only attributes.
type ElectronicsDetail struct {
	Brand          string
	WarrantyMonths int
}

// ClothingDetail carries the clothing-only attributes.
type ClothingDetail struct {
	Size     string
	Material string
}

// GroceryDetail carries the grocery-only attributes.
type GroceryDetail struct {
	ExpiryDate time.Time
	WeightKG   float64
}

// Product is a catalog entry. Category selects exactly one of the detail
// payloads; conversion and comparison sites switch on Category exhaustively.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Status      ProductStatus
	Category    ProductCategory
	Electronics *ElectronicsDetail
	Clothing    *ClothingDetail
	Grocery     *GroceryDetail
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProductID mints a catalog identifier.
func NewProductID() string { return uuid.NewString() }

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: product price cannot be negative", ErrValidation)
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: invalid product status %q", ErrValidation, p.Status)
	}

	switch p.Category {
	case CategoryElectronics:
		if p.Electronics == nil || p.Clothing != nil || p.Grocery != nil {
			return fmt.Errorf("%w: electronics product requires exactly the electronics detail", ErrValidation)
		}
		if p.Electronics.WarrantyMonths < 0 {
			return fmt.Errorf("%w: warranty months cannot be negative", ErrValidation)
		}
	case CategoryClothing:
		if p.Clothing == nil || p.Electronics != nil || p.Grocery != nil {
			return fmt.Errorf("%w: clothing product requires exactly the clothing detail", ErrValidation)
		}
	case CategoryGrocery:
		if p.Grocery == nil || p.Electronics != nil || p.Clothing != nil {
			return fmt.Errorf("%w: grocery product requires exactly the grocery detail", ErrValidation)
		}
		if p.Grocery.WeightKG < 0 {
			return fmt.Errorf("%w: weight cannot be negative", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: invalid product category %q", ErrValidation, p.Category)
	}
	return nil
}
