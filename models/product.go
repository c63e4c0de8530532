package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type VariantType string

const (
	VariantColor    VariantType = "color"
	VariantSize     VariantType = "size"
	VariantMaterial VariantType = "material"
)

// StringList is stored as a JSON-encoded text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

type Product struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Slug          string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string           `gorm:"type:text" json:"description"`
	Price         float64          `gorm:"not null" json:"price"`
	OriginalPrice float64          `json:"original_price,omitempty"`
	Discount      int              `json:"discount"` // percent, derived when OriginalPrice > Price
	Images        StringList       `gorm:"type:text" json:"images"`
	CategoryID    *uint            `gorm:"index" json:"category_id,omitempty"`
	Category      *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand         string           `json:"brand,omitempty"`
	Stock         int              `gorm:"default:0" json:"stock"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	Rating        float64          `gorm:"default:0" json:"rating"`       // derived from reviews, 1 decimal
	ReviewCount   int              `gorm:"default:0" json:"review_count"` // derived from reviews
	IsFeatured    bool             `gorm:"default:false" json:"is_featured"`
	IsNew         bool             `gorm:"default:false" json:"is_new"`
	Tags          StringList       `gorm:"type:text" json:"tags"`
	MerchantID    *uint            `gorm:"index" json:"merchant_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

type ProductVariant struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint        `gorm:"index" json:"product_id"`
	Name          string      `gorm:"not null" json:"name"`
	Type          VariantType `gorm:"type:VARCHAR(20)" json:"type"`
	Value         string      `json:"value"`
	PriceModifier float64     `gorm:"default:0" json:"price_modifier"`
	Stock         int         `gorm:"default:0" json:"stock"`
}

// RecomputeDiscount refreshes the derived discount percent.
func (p *Product) RecomputeDiscount() {
	if p.OriginalPrice > p.Price && p.OriginalPrice > 0 {
		p.Discount = int((p.OriginalPrice - p.Price) / p.OriginalPrice * 100)
	} else {
		p.Discount = 0
	}
}

// ValidVariantType reports whether s is a supported variant type.
func ValidVariantType(s string) bool {
	switch VariantType(s) {
	case VariantColor, VariantSize, VariantMaterial:
		return true
	}
	return false
}
