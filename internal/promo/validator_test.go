package promo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/grama/internal/models"
)

func activeCode(promoType string, value float64) models.PromoCode {
	return models.PromoCode{
		Code:       "TEST",
		Type:       promoType,
		Value:      value,
		IsActive:   true,
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(time.Hour),
	}
}

func TestEligibleRejections(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		mutate   func(*models.PromoCode)
		subtotal float64
	}{
		{
			name:     "inactive",
			mutate:   func(pc *models.PromoCode) { pc.IsActive = false },
			subtotal: 1000,
		},
		{
			name: "not yet valid",
			mutate: func(pc *models.PromoCode) {
				pc.ValidFrom = now.Add(time.Hour)
				pc.ValidUntil = now.Add(2 * time.Hour)
			},
			subtotal: 1000,
		},
		{
			name: "expired",
			mutate: func(pc *models.PromoCode) {
				pc.ValidFrom = now.Add(-2 * time.Hour)
				pc.ValidUntil = now.Add(-time.Hour)
			},
			subtotal: 1000,
		},
		{
			name: "usage limit reached",
			mutate: func(pc *models.PromoCode) {
				pc.UsageLimit = 10
				pc.UsedCount = 10
			},
			subtotal: 1000,
		},
		{
			name:     "below minimum order",
			mutate:   func(pc *models.PromoCode) { pc.MinimumOrder = 500 },
			subtotal: 499,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := activeCode(models.PromoPercentage, 10)
			tt.mutate(&pc)

			_, err := Eligible(pc, tt.subtotal, now)
			assert.ErrorIs(t, err, ErrInvalidPromoCode)
		})
	}
}

func TestEligibleAcceptsValidCode(t *testing.T) {
	pc := activeCode(models.PromoPercentage, 10)
	pc.MinimumOrder = 200
	pc.UsageLimit = 10
	pc.UsedCount = 9

	discount, err := Eligible(pc, 400, time.Now())
	assert.NoError(t, err)
	assert.InDelta(t, 40, discount, 0.001)
}

func TestDiscountForPercentageCapped(t *testing.T) {
	pc := activeCode(models.PromoPercentage, 20)
	pc.MaximumDiscount = 100

	assert.InDelta(t, 60, DiscountFor(pc, 300), 0.001)
	assert.InDelta(t, 100, DiscountFor(pc, 2000), 0.001)
}

func TestDiscountForFixed(t *testing.T) {
	pc := activeCode(models.PromoFixed, 75)

	assert.InDelta(t, 75, DiscountFor(pc, 300), 0.001)
	assert.InDelta(t, 75, DiscountFor(pc, 3000), 0.001)
}

func TestDiscountForFreeDelivery(t *testing.T) {
	pc := activeCode(models.PromoFreeDelivery, 0)

	// Below the free-delivery threshold the code waives the flat fee.
	assert.InDelta(t, 49, DiscountFor(pc, 400), 0.001)
	// Above it delivery is already free, so the code grants nothing.
	assert.InDelta(t, 0, DiscountFor(pc, 600), 0.001)
}

func TestDiscountForUnknownType(t *testing.T) {
	pc := activeCode("bogus", 50)
	assert.InDelta(t, 0, DiscountFor(pc, 400), 0.001)
}
