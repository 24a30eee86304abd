package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcareapp/portal-api/pkg/errors"
)

func testProduct(t *testing.T, price, finalPrice float64, stock int) Product {
	t.Helper()
	base, err := NewMoney(price)
	require.NoError(t, err)
	final, err := NewMoney(finalPrice)
	require.NoError(t, err)

	p, err := NewProduct(Product{
		ID:         1,
		Name:       "Ração Premium",
		SKU:        "RAC-001",
		Price:      base,
		FinalPrice: final,
		TotalStock: stock,
	})
	require.NoError(t, err)
	return p
}

func TestNewProductInvariants(t *testing.T) {
	base, _ := NewMoney(50)
	final, _ := NewMoney(60)

	_, err := NewProduct(Product{Price: base, FinalPrice: final})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = NewProduct(Product{Price: base, FinalPrice: base, TotalStock: -1})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestProductDiscount(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		finalPrice  float64
		hasDiscount bool
		percentage  int
	}{
		{name: "quarter off", price: 100, finalPrice: 75, hasDiscount: true, percentage: 25},
		{name: "no discount", price: 100, finalPrice: 100, hasDiscount: false, percentage: 0},
		{name: "rounds to nearest", price: 90, finalPrice: 60, hasDiscount: true, percentage: 33},
		{name: "rounds up", price: 3, finalPrice: 1, hasDiscount: true, percentage: 67},
		{name: "full discount", price: 80, finalPrice: 0, hasDiscount: true, percentage: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProduct(t, tt.price, tt.finalPrice, 10)
			assert.Equal(t, tt.hasDiscount, p.HasDiscount())
			assert.Equal(t, tt.percentage, p.DiscountPercentage())
		})
	}
}

func TestProductStockClassification(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		inStock bool
		low     bool
		label   string
		color   string
	}{
		{name: "out of stock", stock: 0, inStock: false, low: false,
			label: "Fora de estoque", color: ColorDanger},
		{name: "single unit", stock: 1, inStock: true, low: true,
			label: "Últimas 1 unidades", color: ColorWarning},
		{name: "low stock", stock: 3, inStock: true, low: true,
			label: "Últimas 3 unidades", color: ColorWarning},
		{name: "threshold is low", stock: 5, inStock: true, low: true,
			label: "Últimas 5 unidades", color: ColorWarning},
		{name: "just above threshold", stock: 6, inStock: true, low: false,
			label: "6 disponíveis", color: ColorSuccess},
		{name: "plenty", stock: 20, inStock: true, low: false,
			label: "20 disponíveis", color: ColorSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProduct(t, 100, 100, tt.stock)
			assert.Equal(t, tt.inStock, p.IsInStock())
			assert.Equal(t, tt.low, p.IsLowStock())
			assert.Equal(t, tt.label, p.StockLabel())
			assert.Equal(t, tt.color, p.StockColor())
		})
	}
}
