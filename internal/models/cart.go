package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one (product, variant, quantity) entry in a shopper's cart.
// Product data is denormalized so the cart renders without catalog lookups
// and survives later catalog edits.
type CartItem struct {
	ID             string    `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	VariantID      uuid.UUID `json:"variant_id"`
	ProductName    string    `json:"product_name"`
	VariantName    string    `json:"variant_name"`
	Unit           string    `json:"unit"`
	UnitPrice      float64   `json:"unit_price"`
	CompareAtPrice float64   `json:"compare_at_price"`
	Quantity       int       `json:"quantity"`
	AddedAt        time.Time `json:"added_at"`
}

// CartTotal is the derived price breakdown. It is recomputed after every
// mutation and never hand-edited.
type CartTotal struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"deliveryFee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
	Savings     float64 `json:"savings"`
}
