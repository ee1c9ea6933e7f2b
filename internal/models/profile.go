package models

import "github.com/google/uuid"

// UserAddress is a saved delivery address.
type UserAddress struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Type         string    `json:"type"` // home|work|other
	Title        string    `json:"title"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	Landmark     string    `json:"landmark"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	Instructions string    `json:"instructions"`
	IsDefault    bool      `json:"is_default"`
}
