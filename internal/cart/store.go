package cart

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/example/grama/internal/models"
	"github.com/example/grama/internal/store"
)

// Store holds one shopper's cart, persisted as a snapshot under its key and
// restored on construction. All mutations recompute the breakdown
// synchronously and save fire-and-forget.
type Store struct {
	adapter   store.Adapter
	key       string
	validator PromoValidator

	items     []models.CartItem
	total     models.CartTotal
	promoCode string
	discount  float64
}

// NewStore builds a Store for the given snapshot key and restores any saved
// state. Absent or unreadable snapshots fall back to an empty cart.
func NewStore(adapter store.Adapter, key string, validator PromoValidator) *Store {
	s := &Store{adapter: adapter, key: key, validator: validator}
	s.restore()
	return s
}

// AddItem merges quantity into an existing (product, variant) line item or
// appends a new one.
func (s *Store) AddItem(product *models.Product, variant *models.ProductVariant, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	for i := range s.items {
		if s.items[i].ProductID == product.ID && s.items[i].VariantID == variant.ID {
			s.items[i].Quantity += quantity
			s.recalculate()
			return nil
		}
	}

	s.items = append(s.items, models.CartItem{
		ID:             uuid.NewString(),
		ProductID:      product.ID,
		VariantID:      variant.ID,
		ProductName:    product.Name,
		VariantName:    variant.Name,
		Unit:           product.Unit,
		UnitPrice:      variant.Price,
		CompareAtPrice: variant.CompareAtPrice,
		Quantity:       quantity,
		AddedAt:        time.Now(),
	})
	s.recalculate()
	return nil
}

// RemoveItem deletes a line item. Removing an unknown id is a no-op.
func (s *Store) RemoveItem(itemID string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.recalculate()
}

// UpdateQuantity sets a line item's quantity. Zero or negative quantities
// remove the item.
func (s *Store) UpdateQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		s.RemoveItem(itemID)
		return nil
	}

	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			s.recalculate()
			return nil
		}
	}
	return ErrItemNotFound
}

// ApplyPromoCode validates the code against the current subtotal. On
// rejection the previously applied discount, if any, is left untouched.
func (s *Store) ApplyPromoCode(code string) error {
	discount, err := s.validator.Validate(code, s.total.Subtotal)
	if err != nil {
		return err
	}

	s.promoCode = code
	s.discount = discount
	s.recalculate()
	return nil
}

// RemovePromoCode clears any applied discount.
func (s *Store) RemovePromoCode() {
	s.promoCode = ""
	s.discount = 0
	s.recalculate()
}

// Clear empties the cart and resets the breakdown to its zero state.
func (s *Store) Clear() {
	s.items = nil
	s.promoCode = ""
	s.discount = 0
	s.recalculate()
}

// Items returns the current line items.
func (s *Store) Items() []models.CartItem {
	return s.items
}

// Total returns the current price breakdown.
func (s *Store) Total() models.CartTotal {
	return s.total
}

// PromoCode returns the currently applied code, if any.
func (s *Store) PromoCode() string {
	return s.promoCode
}

// ItemCount returns the summed quantity across line items.
func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// ItemByID returns the line item with the given id.
func (s *Store) ItemByID(itemID string) (models.CartItem, bool) {
	for _, item := range s.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return models.CartItem{}, false
}

// Snapshot returns the persisted slice of cart state.
func (s *Store) Snapshot() models.CartSnapshot {
	return models.CartSnapshot{
		Items:     s.items,
		Total:     s.total,
		PromoCode: s.promoCode,
		Discount:  s.discount,
	}
}

func (s *Store) restore() {
	var snapshot models.CartSnapshot
	found, err := s.adapter.Load(s.key, &snapshot)
	if err != nil {
		log.Printf("[Cart] Discarding unreadable snapshot %q: %v", s.key, err)
	}
	if !found || err != nil {
		s.recalculate()
		return
	}

	s.items = snapshot.Items
	s.promoCode = snapshot.PromoCode
	s.discount = snapshot.Discount
	// The stored total is advisory only; the breakdown is always re-derived.
	s.recalculate()
}

func (s *Store) recalculate() {
	s.total = Recompute(s.items, s.discount)
	if err := s.adapter.Save(s.key, s.Snapshot()); err != nil {
		log.Printf("[Cart] Failed to persist snapshot %q: %v", s.key, err)
	}
}
