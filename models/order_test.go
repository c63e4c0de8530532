package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusDelivered, OrderStatusReturned},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	rejected := []struct{ from, to OrderStatus }{
		{OrderStatusDelivered, OrderStatusPending},
		{OrderStatusShipped, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusConfirmed},
		{OrderStatusReturned, OrderStatusPending},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusPending, OrderStatusPending},
	}
	for _, tc := range rejected {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled", "returned"} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("ready_to_ship"))
	assert.False(t, ValidOrderStatus(""))
}

func TestContainsMerchantProduct(t *testing.T) {
	merchantID := uint(7)
	order := Order{Items: []OrderItem{
		{Product: &Product{MerchantID: nil}},
		{Product: &Product{MerchantID: &merchantID}},
	}}
	assert.True(t, order.ContainsMerchantProduct(7))
	assert.False(t, order.ContainsMerchantProduct(8))

	// items not preloaded
	assert.False(t, Order{Items: []OrderItem{{}}}.ContainsMerchantProduct(7))
}

func TestCartItemSameLine(t *testing.T) {
	v1, v2 := uint(1), uint(2)

	plain := CartItem{ProductID: 10}
	assert.True(t, plain.SameLine(10, nil))
	assert.False(t, plain.SameLine(10, &v1))
	assert.False(t, plain.SameLine(11, nil))

	withVariant := CartItem{ProductID: 10, VariantID: &v1}
	assert.True(t, withVariant.SameLine(10, &v1))
	assert.False(t, withVariant.SameLine(10, &v2))
	assert.False(t, withVariant.SameLine(10, nil))
}

func TestRecomputeDiscount(t *testing.T) {
	p := Product{Price: 80, OriginalPrice: 100}
	p.RecomputeDiscount()
	assert.Equal(t, 20, p.Discount)

	p = Product{Price: 100, OriginalPrice: 80}
	p.RecomputeDiscount()
	assert.Equal(t, 0, p.Discount)

	p = Product{Price: 50}
	p.RecomputeDiscount()
	assert.Equal(t, 0, p.Discount)
}
