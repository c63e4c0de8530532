package models

type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"unique;not null" json:"name"`
	Slug  string `gorm:"unique;not null" json:"slug"`
	Image string `json:"image,omitempty"`

	// ProductCount is recomputed on read, never stored.
	ProductCount int64 `gorm:"-" json:"product_count"`
}
