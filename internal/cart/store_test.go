package cart

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/example/grama/internal/models"
	"github.com/example/grama/internal/store"
)

type fakeValidator struct {
	discounts map[string]float64
}

func (v *fakeValidator) Validate(code string, subtotal float64) (float64, error) {
	discount, ok := v.discounts[code]
	if !ok {
		return 0, errors.New("invalid promo code")
	}
	return discount, nil
}

func testProduct(name string) *models.Product {
	return &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      name,
		Unit:      "kg",
	}
}

func testVariant(price float64) *models.ProductVariant {
	return &models.ProductVariant{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "1 kg",
		Price:     price,
	}
}

func newTestStore() *Store {
	validator := &fakeValidator{discounts: map[string]float64{"SAVE50": 50}}
	return NewStore(store.NewMemoryAdapter(), "cart:test", validator)
}

func TestAddItemMergesSameVariant(t *testing.T) {
	s := newTestStore()
	product := testProduct("Basmati Rice")
	variant := testVariant(100)

	assert.NoError(t, s.AddItem(product, variant, 2))
	assert.NoError(t, s.AddItem(product, variant, 3))

	assert.Len(t, s.Items(), 1)
	assert.Equal(t, 5, s.Items()[0].Quantity)
	assert.Equal(t, 5, s.ItemCount())
	assert.InDelta(t, 500, s.Total().Subtotal, 0.001)
	assert.InDelta(t, 0, s.Total().DeliveryFee, 0.001)
}

func TestAddItemSeparateVariants(t *testing.T) {
	s := newTestStore()
	product := testProduct("Toor Dal")

	assert.NoError(t, s.AddItem(product, testVariant(80), 1))
	assert.NoError(t, s.AddItem(product, testVariant(150), 1))

	assert.Len(t, s.Items(), 2)
	assert.InDelta(t, 230, s.Total().Subtotal, 0.001)
}

func TestAddItemInvalidQuantity(t *testing.T) {
	s := newTestStore()

	err := s.AddItem(testProduct("Milk"), testVariant(30), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, s.Items())
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestStore()
	assert.NoError(t, s.AddItem(testProduct("Atta"), testVariant(250), 1))
	itemID := s.Items()[0].ID

	assert.NoError(t, s.UpdateQuantity(itemID, 4))
	assert.Equal(t, 4, s.Items()[0].Quantity)

	// Zero removes the line item.
	assert.NoError(t, s.UpdateQuantity(itemID, 0))
	assert.Empty(t, s.Items())

	assert.ErrorIs(t, s.UpdateQuantity("missing", 2), ErrItemNotFound)
}

func TestRemoveUnknownItemIsNoop(t *testing.T) {
	s := newTestStore()
	assert.NoError(t, s.AddItem(testProduct("Ghee"), testVariant(550), 1))

	s.RemoveItem("missing")
	assert.Len(t, s.Items(), 1)
}

func TestApplyPromoCode(t *testing.T) {
	s := newTestStore()
	assert.NoError(t, s.AddItem(testProduct("Paneer"), testVariant(90), 2))

	assert.NoError(t, s.ApplyPromoCode("SAVE50"))
	assert.Equal(t, "SAVE50", s.PromoCode())
	assert.InDelta(t, 50, s.Total().Discount, 0.001)

	s.RemovePromoCode()
	assert.Empty(t, s.PromoCode())
	assert.InDelta(t, 0, s.Total().Discount, 0.001)
}

func TestApplyInvalidPromoKeepsExistingDiscount(t *testing.T) {
	s := newTestStore()
	assert.NoError(t, s.AddItem(testProduct("Paneer"), testVariant(90), 2))
	assert.NoError(t, s.ApplyPromoCode("SAVE50"))

	before := s.Total()
	assert.Error(t, s.ApplyPromoCode("BOGUS"))
	assert.Equal(t, "SAVE50", s.PromoCode())
	assert.Equal(t, before, s.Total())
}

func TestClear(t *testing.T) {
	s := newTestStore()
	assert.NoError(t, s.AddItem(testProduct("Curd"), testVariant(40), 3))
	assert.NoError(t, s.ApplyPromoCode("SAVE50"))

	s.Clear()
	assert.Empty(t, s.Items())
	assert.Empty(t, s.PromoCode())
	assert.Equal(t, models.CartTotal{}, s.Total())
}

func TestRestoreFromSnapshot(t *testing.T) {
	adapter := store.NewMemoryAdapter()
	validator := &fakeValidator{discounts: map[string]float64{"SAVE50": 50}}

	s := NewStore(adapter, "cart:u1", validator)
	assert.NoError(t, s.AddItem(testProduct("Sugar"), testVariant(45), 2))
	assert.NoError(t, s.ApplyPromoCode("SAVE50"))

	restored := NewStore(adapter, "cart:u1", validator)
	assert.Len(t, restored.Items(), 1)
	assert.Equal(t, 2, restored.Items()[0].Quantity)
	assert.Equal(t, "SAVE50", restored.PromoCode())
	assert.Equal(t, s.Total(), restored.Total())
}

func TestRestoreDiscardsCorruptSnapshot(t *testing.T) {
	adapter := store.NewMemoryAdapter()
	validator := &fakeValidator{}

	s := NewStore(adapter, "cart:u2", validator)
	assert.NoError(t, s.AddItem(testProduct("Salt"), testVariant(20), 1))

	adapter.Corrupt("cart:u2", []byte("{not json"))

	restored := NewStore(adapter, "cart:u2", validator)
	assert.Empty(t, restored.Items())
	assert.Equal(t, models.CartTotal{}, restored.Total())
}
