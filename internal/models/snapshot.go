package models

// Snapshot is a named, denormalized JSON blob persisted by the store
// adapter. One row per key, overwritten on every save.
type Snapshot struct {
	BaseModel
	Key  string `gorm:"uniqueIndex" json:"key"`
	Data []byte `gorm:"type:jsonb" json:"data"`
}

// AuthSnapshot is the persisted slice of auth state: the signed-in user and
// the flag, nothing from the in-flight OTP challenge.
type AuthSnapshot struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// CartSnapshot is the persisted slice of cart state. The promo fields ride
// along so an applied discount survives a restore.
type CartSnapshot struct {
	Items     []CartItem `json:"items"`
	Total     CartTotal  `json:"total"`
	PromoCode string     `json:"promoCode,omitempty"`
	Discount  float64    `json:"discount,omitempty"`
}

// NotificationSettings mirrors the shopper's opt-ins.
type NotificationSettings struct {
	OrderUpdates bool `json:"orderUpdates"`
	Promotions   bool `json:"promotions"`
	NewProducts  bool `json:"newProducts"`
	SMS          bool `json:"sms"`
	WhatsApp     bool `json:"whatsapp"`
	Push         bool `json:"push"`
}

// PreferencesSnapshot is the persisted app-preferences state.
type PreferencesSnapshot struct {
	Theme           string               `json:"theme"`    // light|dark|auto
	Language        string               `json:"language"` // hindi|english
	SelectedAddress *string              `json:"selectedAddress"`
	Settings        NotificationSettings `json:"settings"`
}

// DefaultPreferences returns the initial preferences state. Restoration of a
// partial or corrupted snapshot starts from these values.
func DefaultPreferences() PreferencesSnapshot {
	return PreferencesSnapshot{
		Theme:    "light",
		Language: "english",
		Settings: NotificationSettings{
			OrderUpdates: true,
			Promotions:   true,
			SMS:          true,
			Push:         true,
		},
	}
}
