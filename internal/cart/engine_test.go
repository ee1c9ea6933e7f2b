package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/grama/internal/models"
)

func item(price, compareAt float64, quantity int) models.CartItem {
	return models.CartItem{
		UnitPrice:      price,
		CompareAtPrice: compareAt,
		Quantity:       quantity,
	}
}

func TestRecomputeBelowFreeDeliveryThreshold(t *testing.T) {
	total := Recompute([]models.CartItem{item(100, 0, 4)}, 0)

	assert.InDelta(t, 400, total.Subtotal, 0.001)
	assert.InDelta(t, 20, total.Tax, 0.001)
	assert.InDelta(t, 49, total.DeliveryFee, 0.001)
	assert.InDelta(t, 469, total.Total, 0.001)
}

func TestRecomputeAboveFreeDeliveryThreshold(t *testing.T) {
	total := Recompute([]models.CartItem{item(200, 0, 3)}, 0)

	assert.InDelta(t, 600, total.Subtotal, 0.001)
	assert.InDelta(t, 30, total.Tax, 0.001)
	assert.InDelta(t, 0, total.DeliveryFee, 0.001)
	assert.InDelta(t, 630, total.Total, 0.001)
}

func TestRecomputeEmptyCart(t *testing.T) {
	assert.Equal(t, models.CartTotal{}, Recompute(nil, 0))
	assert.Equal(t, models.CartTotal{}, Recompute(nil, 100))
}

func TestRecomputeDiscountNeverExceedsOwed(t *testing.T) {
	total := Recompute([]models.CartItem{item(100, 0, 1)}, 10000)

	owed := 100 + 5 + 49.0
	assert.InDelta(t, owed, total.Discount, 0.001)
	assert.InDelta(t, 0, total.Total, 0.001)
}

func TestRecomputeNegativeDiscountIgnored(t *testing.T) {
	total := Recompute([]models.CartItem{item(100, 0, 1)}, -20)

	assert.InDelta(t, 0, total.Discount, 0.001)
	assert.InDelta(t, 154, total.Total, 0.001)
}

func TestRecomputeSavings(t *testing.T) {
	items := []models.CartItem{
		item(100, 120, 2), // saves 40
		item(50, 0, 3),    // no compare-at price, no savings
	}
	total := Recompute(items, 0)

	assert.InDelta(t, 40, total.Savings, 0.001)
}

func TestDeliveryFeeFor(t *testing.T) {
	assert.InDelta(t, FlatDeliveryFee, DeliveryFeeFor(0), 0.001)
	assert.InDelta(t, FlatDeliveryFee, DeliveryFeeFor(499.99), 0.001)
	assert.InDelta(t, 0, DeliveryFeeFor(500), 0.001)
	assert.InDelta(t, 0, DeliveryFeeFor(1200), 0.001)
}
