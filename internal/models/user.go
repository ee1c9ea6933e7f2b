package models

// User roles. Role is assigned at account creation and never changes through
// this service.
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// User represents a phone-verified account. Accounts are created on the
// first successful OTP verification for a phone number.
type User struct {
	BaseModel
	Phone           string        `gorm:"uniqueIndex" json:"phone"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	IsPhoneVerified bool          `json:"is_phone_verified"`
	Role            string        `json:"role"`
	Addresses       []UserAddress `json:"addresses,omitempty"`
	Orders          []Order       `json:"orders,omitempty"`
}
