package model

import (
	"fmt"
	"math"

	"github.com/petcareapp/portal-api/pkg/errors"
)

// Display color tags consumed by the storefront UI.
const (
	ColorDanger  = "danger"
	ColorWarning = "warning"
	ColorSuccess = "success"
	ColorPrimary = "primary"
	ColorNeutral = "neutral"
)

// Stock at or below this count is flagged as running out.
const lowStockThreshold = 5

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Product is an immutable catalog snapshot. FinalPrice already reflects any
// discount applied by the backend and never exceeds Price.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Barcode     string    `json:"barcode,omitempty"`
	Brand       *Brand    `json:"brand,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Description string    `json:"description"`
	Price       Money     `json:"price"`
	FinalPrice  Money     `json:"final_price"`
	TotalStock  int       `json:"total_stock"`
	Image       string    `json:"image,omitempty"`
}

// NewProduct checks the pricing and stock invariants on an otherwise
// wire-shaped product.
func NewProduct(p Product) (Product, error) {
	if p.FinalPrice.IsGreaterThan(p.Price) {
		return Product{}, errors.NewValidation("final price cannot exceed base price", nil)
	}
	if p.TotalStock < 0 {
		return Product{}, errors.NewValidation("stock count cannot be negative", nil)
	}
	return p, nil
}

func (p Product) HasDiscount() bool {
	return p.FinalPrice.Value() < p.Price.Value()
}

// DiscountPercentage is the integer-rounded percentage off the base price,
// zero when no discount applies.
func (p Product) DiscountPercentage() int {
	if !p.HasDiscount() {
		return 0
	}
	return int(math.Round((p.Price.Value() - p.FinalPrice.Value()) / p.Price.Value() * 100))
}

func (p Product) IsInStock() bool {
	return p.TotalStock > 0
}

func (p Product) IsLowStock() bool {
	return p.TotalStock > 0 && p.TotalStock <= lowStockThreshold
}

func (p Product) StockLabel() string {
	switch {
	case !p.IsInStock():
		return "Fora de estoque"
	case p.IsLowStock():
		return fmt.Sprintf("Últimas %d unidades", p.TotalStock)
	default:
		return fmt.Sprintf("%d disponíveis", p.TotalStock)
	}
}

func (p Product) StockColor() string {
	switch {
	case !p.IsInStock():
		return ColorDanger
	case p.IsLowStock():
		return ColorWarning
	default:
		return ColorSuccess
	}
}
