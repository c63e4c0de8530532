package models

import "time"

type Role string

const (
	RoleUser     Role = "user"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"type:VARCHAR(20);default:'user'" json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Address   Address   `gorm:"embedded" json:"address"` // Embeds address fields directly
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address is embedded in User and copied onto Order snapshots.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ValidRole reports whether s is one of the three flat roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleMerchant, RoleAdmin:
		return true
	}
	return false
}
