package models

import "time"

type Wishlist struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint           `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE wishlist per user
	Items     []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type WishlistItem struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	WishlistID uint      `gorm:"index" json:"wishlist_id"`
	ProductID  uint      `gorm:"not null" json:"product_id"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}
