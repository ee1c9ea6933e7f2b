package models

// Category groups products for browsing (fruits, dairy, staples and so on).
type Category struct {
	BaseModel
	Name      string    `json:"name"`
	Slug      string    `gorm:"uniqueIndex" json:"slug"`
	Icon      string    `json:"icon"`
	Image     string    `json:"image"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	Products  []Product `json:"products,omitempty"`
}

// Vendor is a seller whose products appear in the storefront.
type Vendor struct {
	BaseModel
	BusinessName string    `json:"business_name"`
	OwnerName    string    `json:"owner_name"`
	Phone        string    `gorm:"index" json:"phone"`
	IsActive     bool      `json:"is_active"`
	Products     []Product `json:"products,omitempty"`
}
