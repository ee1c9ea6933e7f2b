package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a placed cart. The pricing breakdown is copied from the cart at
// checkout so later catalog or promo edits never change a placed order.
type Order struct {
	BaseModel
	UserID              uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	User                *User       `json:"user,omitempty"`
	OrderNumber         string      `gorm:"uniqueIndex" json:"order_number"`
	Status              string      `json:"status"`
	PlacedAt            time.Time   `json:"placed_at"`
	Subtotal            float64     `json:"subtotal"`
	Tax                 float64     `json:"tax"`
	DeliveryFee         float64     `json:"delivery_fee"`
	Discount            float64     `json:"discount"`
	Savings             float64     `json:"savings"`
	TotalAmount         float64     `json:"total_amount"`
	Currency            string      `json:"currency"`
	PromoCode           string      `json:"promo_code"`
	PaymentMethod       string      `json:"payment_method"`
	DeliveryAddressID   *uuid.UUID  `gorm:"type:uuid" json:"delivery_address_id"`
	DeliveryAddressLine string      `json:"delivery_address_line"`
	DeliveryLandmark    string      `json:"delivery_landmark"`
	DeliveryCity        string      `json:"delivery_city"`
	DeliveryPincode     string      `json:"delivery_pincode"`
	Notes               string      `json:"notes"`
	Items               []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	VariantID   *uuid.UUID `gorm:"type:uuid" json:"variant_id"`
	ProductName string     `json:"product_name"`
	VariantName string     `json:"variant_name"`
	Unit        string     `json:"unit"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	LineTotal   float64    `json:"line_total"`
}
