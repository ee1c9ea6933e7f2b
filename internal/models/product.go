package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a grocery item. Purchasable configurations live on variants;
// the product itself carries descriptive data only.
type Product struct {
	BaseModel
	Name             string           `json:"name"`
	Slug             string           `gorm:"uniqueIndex" json:"slug"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	Brand            string           `json:"brand"`
	Unit             string           `json:"unit"` // kg|grams|liters|pieces|packets
	Tags             pq.StringArray   `gorm:"type:text[]" json:"tags"`
	CategoryID       *uuid.UUID       `gorm:"type:uuid" json:"category_id"`
	Category         *Category        `json:"category,omitempty"`
	VendorID         *uuid.UUID       `gorm:"type:uuid" json:"vendor_id"`
	Vendor           *Vendor          `json:"vendor,omitempty"`
	IsActive         bool             `json:"is_active"`
	Variants         []ProductVariant `json:"variants,omitempty"`
	Images           []ProductImage   `json:"images,omitempty"`
}

// ProductVariant is one purchasable size of a product. CompareAtPrice is the
// strike-through price used to compute shopper savings.
type ProductVariant struct {
	BaseModel
	ProductID      uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	Size           string    `json:"size"`
	Price          float64   `json:"price"`
	CompareAtPrice float64   `json:"compare_at_price"`
	StockQuantity  int       `json:"stock_quantity"`
	IsActive       bool      `json:"is_active"`
}

type ProductImage struct {
	BaseModel
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	URL          string    `json:"url"`
	AltText      string    `json:"alt_text"`
	DisplayOrder int       `json:"display_order"`
}
