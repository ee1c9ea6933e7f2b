// Package cart maintains a shopper's line items and recomputes a consistent
// price breakdown after every mutation.
package cart

import (
	"errors"

	"github.com/example/grama/internal/models"
)

// Pricing rules: 5% GST, flat delivery fee waived for orders of 500 and up.
const (
	TaxRate               = 0.05
	FreeDeliveryThreshold = 500
	FlatDeliveryFee       = 49
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart item not found")
)

// PromoValidator validates a promo code against the current subtotal and
// returns the discount amount it grants.
type PromoValidator interface {
	Validate(code string, subtotal float64) (float64, error)
}

// DeliveryFeeFor returns the delivery fee charged for a given subtotal.
func DeliveryFeeFor(subtotal float64) float64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	return FlatDeliveryFee
}

// Recompute derives the full price breakdown for the given items and
// discount. The discount is capped so it never exceeds what is owed, and the
// total is clamped at zero. An empty cart always yields the zero breakdown.
func Recompute(items []models.CartItem, discount float64) models.CartTotal {
	if len(items) == 0 {
		return models.CartTotal{}
	}

	var subtotal, savings float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
		if item.CompareAtPrice > item.UnitPrice {
			savings += (item.CompareAtPrice - item.UnitPrice) * float64(item.Quantity)
		}
	}

	tax := subtotal * TaxRate
	deliveryFee := DeliveryFeeFor(subtotal)

	if discount < 0 {
		discount = 0
	}
	if owed := subtotal + tax + deliveryFee; discount > owed {
		discount = owed
	}

	total := subtotal + tax + deliveryFee - discount
	if total < 0 {
		total = 0
	}

	return models.CartTotal{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: deliveryFee,
		Discount:    discount,
		Total:       total,
		Savings:     savings,
	}
}
