package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint            `gorm:"index" json:"cart_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	VariantID *uint           `json:"variant_id,omitempty"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// SameLine reports whether an incoming (product, variant) pair belongs to
// this line. Two items with the same product but different variants are
// distinct lines.
func (i CartItem) SameLine(productID uint, variantID *uint) bool {
	if i.ProductID != productID {
		return false
	}
	if i.VariantID == nil || variantID == nil {
		return i.VariantID == nil && variantID == nil
	}
	return *i.VariantID == *variantID
}
