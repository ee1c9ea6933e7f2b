package models

import "time"

// OTPChallenge is one in-flight phone verification attempt. At most one
// challenge per phone is active (not consumed, not superseded, not expired);
// a resend supersedes the previous challenge of the same lineage.
type OTPChallenge struct {
	BaseModel
	Phone       string     `gorm:"index" json:"phone"`
	CodeHash    string     `json:"-"`
	ExpiresAt   time.Time  `json:"expires_at"`
	ConsumedAt  *time.Time `json:"consumed_at"`
	Superseded  bool       `json:"superseded"`
	ResendCount int        `json:"resend_count"`
	Attempts    int        `json:"attempts"`
}

// Active reports whether the challenge can still be verified at the given
// instant. Expiry is evaluated lazily here, not by a timer.
func (c *OTPChallenge) Active(now time.Time) bool {
	return c.ConsumedAt == nil && !c.Superseded && now.Before(c.ExpiresAt)
}
