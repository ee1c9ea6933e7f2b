// Package promo validates promo codes against a cart subtotal and computes
// the discount they grant.
package promo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/example/grama/internal/cart"
	"github.com/example/grama/internal/models"
)

// ErrInvalidPromoCode covers every rejection: unknown, inactive, outside its
// validity window, exhausted, or below the minimum order. The wrapped
// message says which.
var ErrInvalidPromoCode = errors.New("invalid promo code")

// Validator checks codes against the promo_codes table. It satisfies
// cart.PromoValidator.
type Validator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewValidator constructs a Validator.
func NewValidator(db *gorm.DB) *Validator {
	return &Validator{db: db, now: time.Now}
}

// Validate returns the discount the code grants for the given subtotal, or
// ErrInvalidPromoCode when the code cannot be applied.
func (v *Validator) Validate(code string, subtotal float64) (float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, fmt.Errorf("%w: empty code", ErrInvalidPromoCode)
	}

	var pc models.PromoCode
	if err := v.db.Where("code = ?", code).First(&pc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: unknown code", ErrInvalidPromoCode)
		}
		return 0, err
	}

	return Eligible(pc, subtotal, v.now())
}

// Redeem records one use of the code. Called at checkout, not at apply, so
// abandoned carts never consume usage budget.
func (v *Validator) Redeem(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	return v.db.Model(&models.PromoCode{}).
		Where("code = ?", code).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

// Eligible applies the acceptance rules to a loaded promo code and returns
// the discount for the subtotal.
func Eligible(pc models.PromoCode, subtotal float64, now time.Time) (float64, error) {
	if !pc.IsActive {
		return 0, fmt.Errorf("%w: code is not active", ErrInvalidPromoCode)
	}
	if now.Before(pc.ValidFrom) || now.After(pc.ValidUntil) {
		return 0, fmt.Errorf("%w: code is outside its validity window", ErrInvalidPromoCode)
	}
	if pc.UsageLimit > 0 && pc.UsedCount >= pc.UsageLimit {
		return 0, fmt.Errorf("%w: usage limit reached", ErrInvalidPromoCode)
	}
	if subtotal < pc.MinimumOrder {
		return 0, fmt.Errorf("%w: order below minimum of %.2f", ErrInvalidPromoCode, pc.MinimumOrder)
	}

	return DiscountFor(pc, subtotal), nil
}

// DiscountFor computes the discount amount for an accepted code.
func DiscountFor(pc models.PromoCode, subtotal float64) float64 {
	switch pc.Type {
	case models.PromoPercentage:
		discount := subtotal * pc.Value / 100
		if pc.MaximumDiscount > 0 && discount > pc.MaximumDiscount {
			discount = pc.MaximumDiscount
		}
		return discount
	case models.PromoFixed:
		return pc.Value
	case models.PromoFreeDelivery:
		return cart.DeliveryFeeFor(subtotal)
	default:
		return 0
	}
}
