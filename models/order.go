package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // Confirmed by seller
	OrderStatusProcessing OrderStatus = "processing" // Being packed
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before shipping
	OrderStatusReturned   OrderStatus = "returned"   // Customer returned the item

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

// statusEdges restricts which status changes are accepted. A status with no
// entry is terminal.
var statusEdges = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusReturned},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is part of the status enumeration.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is part of the payment status enumeration.
func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type Order struct {
	ID              uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber     string        `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID          uint          `gorm:"index;not null" json:"user_id"`
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress Address       `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  Address       `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	PaymentMethod   string        `json:"payment_method"` // e.g. "card", "cod"
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Subtotal        float64       `json:"subtotal"`
	Discount        float64       `json:"discount"`
	Shipping        float64       `json:"shipping"`
	Tax             float64       `json:"tax"`
	Total           float64       `json:"total"`
	TrackingNumber  string        `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time  `json:"estimated_delivery,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// OrderItem is an immutable snapshot of a cart line at checkout time.
type OrderItem struct {
	ID           uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      uint     `gorm:"index" json:"order_id"`
	ProductID    uint     `json:"product_id"`
	Product      *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName  string   `json:"product_name"`
	ProductImage string   `json:"product_image,omitempty"`
	VariantID    *uint    `json:"variant_id,omitempty"`
	VariantName  string   `json:"variant_name,omitempty"`
	VariantValue string   `json:"variant_value,omitempty"`
	UnitPrice    float64  `json:"unit_price"` // price + variant modifier at purchase time
	Quantity     int      `json:"quantity"`
}

// ContainsMerchantProduct reports whether any populated item belongs to the
// given merchant. Items must be preloaded with their products.
func (o Order) ContainsMerchantProduct(merchantID uint) bool {
	for _, item := range o.Items {
		if item.Product != nil && item.Product.MerchantID != nil && *item.Product.MerchantID == merchantID {
			return true
		}
	}
	return false
}
