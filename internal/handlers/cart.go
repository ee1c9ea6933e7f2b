package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grama/internal/cart"
	"github.com/example/grama/internal/middleware"
	"github.com/example/grama/internal/models"
	"github.com/example/grama/internal/promo"
	"github.com/example/grama/internal/store"
)

// CartHandler manages the shopper's cart endpoints. Each request restores
// the caller's cart store from its snapshot, mutates it, and lets the store
// persist the result.
type CartHandler struct {
	db        *gorm.DB
	snapshots store.Adapter
	validator cart.PromoValidator
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(db *gorm.DB, snapshots store.Adapter, validator cart.PromoValidator) *CartHandler {
	return &CartHandler{db: db, snapshots: snapshots, validator: validator}
}

func (h *CartHandler) storeFor(userID uuid.UUID) *cart.Store {
	return cart.NewStore(h.snapshots, store.CartKey(userID.String()), h.validator)
}

// GetCart returns the caller's cart with its derived breakdown.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(cartResponse(h.storeFor(userID)))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// AddItem merges a (product, variant, quantity) into the cart.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	variantID, err := uuid.Parse(req.VariantID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid variant id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ? AND is_active = ?", productID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var variant models.ProductVariant
	if err := h.db.First(&variant, "id = ? AND product_id = ? AND is_active = ?", variantID, productID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "variant not found")
		}
		return err
	}

	s := h.storeFor(userID)
	if err := s.AddItem(&product, &variant, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must be at least 1")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(cartResponse(s))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets a line item's quantity; zero removes it.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	s := h.storeFor(userID)
	if err := s.UpdateQuantity(c.Params("id"), req.Quantity); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	return c.JSON(cartResponse(s))
}

// RemoveItem deletes a line item. Unknown ids are ignored.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	s := h.storeFor(userID)
	s.RemoveItem(c.Params("id"))

	return c.JSON(cartResponse(s))
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	s := h.storeFor(userID)
	s.Clear()

	return c.JSON(cartResponse(s))
}

type applyPromoRequest struct {
	Code string `json:"code"`
}

// ApplyPromo applies a promo code to the cart.
func (h *CartHandler) ApplyPromo(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req applyPromoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	s := h.storeFor(userID)
	if err := s.ApplyPromoCode(req.Code); err != nil {
		if errors.Is(err, promo.ErrInvalidPromoCode) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(cartResponse(s))
}

// RemovePromo clears the applied promo code.
func (h *CartHandler) RemovePromo(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	s := h.storeFor(userID)
	s.RemovePromoCode()

	return c.JSON(cartResponse(s))
}

func cartResponse(s *cart.Store) fiber.Map {
	items := s.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	return fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items":      items,
			"total":      s.Total(),
			"promo_code": s.PromoCode(),
			"item_count": s.ItemCount(),
		},
	}
}
