// Package pricing holds the money math shared by cart reads and checkout.
// All intermediate arithmetic runs on decimals; only the JSON boundary sees
// float64.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/shopora/storefront-api/models"
)

const (
	FreeShippingThreshold = 100.0
	ShippingFee           = 9.99
	TaxRate               = 0.08
)

// Totals carries the derived amounts returned with every cart response and
// persisted once on each order.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// UnitPrice is the product price plus the selected variant's modifier.
func UnitPrice(product *models.Product, variant *models.ProductVariant) float64 {
	price := decimal.NewFromFloat(product.Price)
	if variant != nil {
		price = price.Add(decimal.NewFromFloat(variant.PriceModifier))
	}
	f, _ := price.Round(2).Float64()
	return f
}

// CartTotals recomputes the derived amounts for a cart. Items must be
// preloaded with their products (and variants where set); lines whose product
// no longer exists contribute nothing.
func CartTotals(items []models.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		unit := decimal.NewFromFloat(UnitPrice(item.Product, item.Variant))
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return compute(subtotal, decimal.Zero)
}

// OrderTotals computes the persisted amounts from checkout snapshots.
func OrderTotals(items []models.OrderItem, discount float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		unit := decimal.NewFromFloat(item.UnitPrice)
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return compute(subtotal, decimal.NewFromFloat(discount))
}

// compute applies the shipping threshold and tax rate:
//
//	shipping = 0 if subtotal >= 100 else 9.99
//	tax      = 8% of (subtotal - discount)
//	total    = subtotal - discount + shipping + tax
func compute(subtotal, discount decimal.Decimal) Totals {
	shipping := decimal.NewFromFloat(ShippingFee)
	if subtotal.GreaterThanOrEqual(decimal.NewFromFloat(FreeShippingThreshold)) {
		shipping = decimal.Zero
	}
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(decimal.NewFromFloat(TaxRate)).Round(2)
	total := taxable.Add(shipping).Add(tax).Round(2)

	t := Totals{}
	t.Subtotal, _ = subtotal.Round(2).Float64()
	t.Discount, _ = discount.Round(2).Float64()
	t.Shipping, _ = shipping.Round(2).Float64()
	t.Tax, _ = tax.Float64()
	t.Total, _ = total.Float64()
	return t
}
