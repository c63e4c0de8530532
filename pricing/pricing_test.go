package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopora/storefront-api/models"
)

func cartItem(price, modifier float64, qty int) models.CartItem {
	item := models.CartItem{
		Quantity: qty,
		Product:  &models.Product{Price: price},
	}
	if modifier != 0 {
		item.Variant = &models.ProductVariant{PriceModifier: modifier}
	}
	return item
}

func TestCartTotalsFreeShippingAtThreshold(t *testing.T) {
	// One item at $50, qty 2: subtotal hits the $100 threshold exactly.
	totals := CartTotals([]models.CartItem{cartItem(50, 0, 2)})

	assert.Equal(t, 100.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.Equal(t, 8.0, totals.Tax)
	assert.Equal(t, 108.0, totals.Total)
}

func TestCartTotalsBelowThreshold(t *testing.T) {
	totals := CartTotals([]models.CartItem{cartItem(10, 0, 3)})

	assert.Equal(t, 30.0, totals.Subtotal)
	assert.Equal(t, 9.99, totals.Shipping)
	assert.Equal(t, 2.4, totals.Tax)
	assert.Equal(t, 42.39, totals.Total)
}

func TestCartTotalsVariantModifier(t *testing.T) {
	// $20 base + $5 modifier, qty 2 -> subtotal 50
	totals := CartTotals([]models.CartItem{cartItem(20, 5, 2)})

	assert.Equal(t, 50.0, totals.Subtotal)
	assert.Equal(t, 9.99, totals.Shipping)
	assert.Equal(t, 4.0, totals.Tax)
	assert.Equal(t, 63.99, totals.Total)
}

func TestCartTotalsSkipsDanglingLines(t *testing.T) {
	items := []models.CartItem{
		cartItem(25, 0, 2),
		{Quantity: 3, Product: nil}, // product deleted since the line was added
	}
	totals := CartTotals(items)
	assert.Equal(t, 50.0, totals.Subtotal)
}

func TestCartTotalsEmpty(t *testing.T) {
	totals := CartTotals(nil)
	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 9.99, totals.Shipping)
	assert.Equal(t, 0.0, totals.Tax)
	assert.Equal(t, 9.99, totals.Total)
}

func TestOrderTotalsInvariant(t *testing.T) {
	items := []models.OrderItem{
		{UnitPrice: 19.99, Quantity: 3},
		{UnitPrice: 45.5, Quantity: 1},
	}
	totals := OrderTotals(items, 10)

	// total == subtotal - discount + shipping + tax
	assert.InDelta(t, totals.Subtotal-totals.Discount+totals.Shipping+totals.Tax, totals.Total, 0.001)
	assert.Equal(t, 105.47, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.InDelta(t, 0.08*(totals.Subtotal-10), totals.Tax, 0.01)
}

func TestUnitPrice(t *testing.T) {
	product := &models.Product{Price: 49.99}
	assert.Equal(t, 49.99, UnitPrice(product, nil))
	assert.Equal(t, 54.99, UnitPrice(product, &models.ProductVariant{PriceModifier: 5}))
	assert.Equal(t, 44.99, UnitPrice(product, &models.ProductVariant{PriceModifier: -5}))
}
