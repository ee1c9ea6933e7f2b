package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grama/internal/cart"
	"github.com/example/grama/internal/middleware"
	"github.com/example/grama/internal/models"
	"github.com/example/grama/internal/promo"
	"github.com/example/grama/internal/store"
	"github.com/example/grama/internal/utils"
)

// OrderHandler turns carts into orders and serves order history.
type OrderHandler struct {
	db        *gorm.DB
	snapshots store.Adapter
	validator *promo.Validator
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, snapshots store.Adapter, validator *promo.Validator) *OrderHandler {
	return &OrderHandler{db: db, snapshots: snapshots, validator: validator}
}

type createOrderRequest struct {
	PaymentMethod     string `json:"payment_method"`
	DeliveryAddressID string `json:"delivery_address_id"`
	Notes             string `json:"notes"`
}

// CreateOrder places an order from the caller's cart. The cart's breakdown
// is copied onto the order and the cart is cleared afterwards.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	s := cart.NewStore(h.snapshots, store.CartKey(userID.String()), h.validator)
	items := s.Items()
	if len(items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
	}

	total := s.Total()
	order := models.Order{
		UserID:        userID,
		OrderNumber:   generateOrderNumber(),
		Status:        "pending",
		PlacedAt:      time.Now(),
		Subtotal:      total.Subtotal,
		Tax:           total.Tax,
		DeliveryFee:   total.DeliveryFee,
		Discount:      total.Discount,
		Savings:       total.Savings,
		TotalAmount:   total.Total,
		Currency:      "INR",
		PromoCode:     s.PromoCode(),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	if req.DeliveryAddressID != "" {
		id, err := uuid.Parse(req.DeliveryAddressID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid delivery address id")
		}

		var address models.UserAddress
		if err := h.db.First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "delivery address not found")
			}
			return err
		}

		order.DeliveryAddressID = &address.ID
		order.DeliveryAddressLine = address.AddressLine1
		order.DeliveryLandmark = address.Landmark
		order.DeliveryCity = address.City
		order.DeliveryPincode = address.Pincode
	}

	for _, item := range items {
		productID := item.ProductID
		variantID := item.VariantID
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   &productID,
			VariantID:   &variantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.UnitPrice * float64(item.Quantity),
		})
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	// Usage budget is consumed at checkout, not at apply.
	if order.PromoCode != "" {
		if err := h.validator.Redeem(order.PromoCode); err != nil {
			log.Printf("[Order] Failed to record promo usage for %s: %v", order.PromoCode, err)
		}
	}

	s.Clear()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"placed_at":    order.PlacedAt,
			"total":        order.TotalAmount,
			"currency":     order.Currency,
		},
	})
}

// ListOrders returns orders for the authenticated user.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("user_id = ?", userID).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order for the authenticated user.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

func generateOrderNumber() string {
	return fmt.Sprintf("GG-%d", time.Now().UnixNano()%1000000000)
}
