package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/grama/internal/promo"
)

// PromoHandler exposes promo code validation for the storefront cart.
type PromoHandler struct {
	validator *promo.Validator
}

// NewPromoHandler constructs a PromoHandler.
func NewPromoHandler(validator *promo.Validator) *PromoHandler {
	return &PromoHandler{validator: validator}
}

type validatePromoRequest struct {
	Code      string  `json:"code"`
	CartTotal float64 `json:"cartTotal"`
}

// Validate checks a promo code against the submitted cart subtotal and
// returns the discount it would grant.
func (h *PromoHandler) Validate(c *fiber.Ctx) error {
	var req validatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	discount, err := h.validator.Validate(req.Code, req.CartTotal)
	if err != nil {
		if errors.Is(err, promo.ErrInvalidPromoCode) {
			return badRequest(c, err.Error())
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"discount": discount,
	})
}
