package models

import "time"

// Promo code discount types.
const (
	PromoPercentage   = "percentage"
	PromoFixed        = "fixed"
	PromoFreeDelivery = "freedelivery"
)

// PromoCode reduces an order total when applied to an eligible cart.
type PromoCode struct {
	BaseModel
	Code            string    `gorm:"uniqueIndex" json:"code"`
	Type            string    `json:"type"` // percentage|fixed|freedelivery
	Value           float64   `json:"value"`
	MinimumOrder    float64   `json:"minimum_order"`
	MaximumDiscount float64   `json:"maximum_discount"`
	UsageLimit      int       `json:"usage_limit"`
	UsedCount       int       `json:"used_count"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
	Description     string    `json:"description"`
	IsActive        bool      `json:"is_active"`
}
