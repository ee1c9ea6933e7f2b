package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grama/internal/models"
	"github.com/example/grama/internal/utils"
)

// ProductHandler manages the grocery catalog.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts returns paginated products with optional filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{}).Where("is_active = ?", true)

	if v := c.Query("category_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			query = query.Where("category_id = ?", id)
		}
	}

	if v := c.Query("vendor_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			query = query.Where("vendor_id = ?", id)
		}
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q := "%" + search + "%"
		query = query.Where("name ILIKE ? OR short_description ILIKE ?", q, q)
	}

	if tag := c.Query("tag"); tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		if val, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("id IN (SELECT product_id FROM product_variants WHERE price >= ?)", val)
		}
	}

	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if val, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("id IN (SELECT product_id FROM product_variants WHERE price <= ?)", val)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Vendor").Preload("Variants").
		Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetProduct loads a product with its relations.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Category").
		Preload("Vendor").
		Preload("Variants").
		Preload("Images").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

type productVariantRequest struct {
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	Size           string  `json:"size"`
	Price          float64 `json:"price"`
	CompareAtPrice float64 `json:"compare_at_price"`
	StockQuantity  int     `json:"stock_quantity"`
	IsActive       *bool   `json:"is_active"`
}

type productImageRequest struct {
	URL          string `json:"url"`
	AltText      string `json:"alt_text"`
	DisplayOrder int    `json:"display_order"`
}

type productRequest struct {
	Name             string                  `json:"name"`
	Slug             string                  `json:"slug"`
	Description      string                  `json:"description"`
	ShortDescription string                  `json:"short_description"`
	Brand            string                  `json:"brand"`
	Unit             string                  `json:"unit"`
	Tags             []string                `json:"tags"`
	CategoryID       string                  `json:"category_id"`
	VendorID         string                  `json:"vendor_id"`
	IsActive         *bool                   `json:"is_active"`
	Variants         []productVariantRequest `json:"variants"`
	Images           []productImageRequest   `json:"images"`
}

// CreateProduct handles product creation.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := buildProductFromRequest(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct updates a product and replaces its variants and images.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var existing models.Product
	if err := h.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := buildProductFromRequest(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&product).Error
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product with its variants and images.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "product deleted"})
}

func buildProductFromRequest(req productRequest) (models.Product, error) {
	if req.Name == "" || req.Slug == "" {
		return models.Product{}, errors.New("name and slug are required")
	}
	if len(req.Variants) == 0 {
		return models.Product{}, errors.New("at least one variant is required")
	}

	product := models.Product{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Brand:            req.Brand,
		Unit:             req.Unit,
		Tags:             req.Tags,
		IsActive:         true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return models.Product{}, errors.New("invalid category id")
		}
		product.CategoryID = &id
	}
	if req.VendorID != "" {
		id, err := uuid.Parse(req.VendorID)
		if err != nil {
			return models.Product{}, errors.New("invalid vendor id")
		}
		product.VendorID = &id
	}

	for _, v := range req.Variants {
		if v.Price <= 0 {
			return models.Product{}, errors.New("variant price must be positive")
		}
		variant := models.ProductVariant{
			SKU:            v.SKU,
			Name:           v.Name,
			Size:           v.Size,
			Price:          v.Price,
			CompareAtPrice: v.CompareAtPrice,
			StockQuantity:  v.StockQuantity,
			IsActive:       true,
		}
		if v.IsActive != nil {
			variant.IsActive = *v.IsActive
		}
		product.Variants = append(product.Variants, variant)
	}

	for _, img := range req.Images {
		product.Images = append(product.Images, models.ProductImage{
			URL:          img.URL,
			AltText:      img.AltText,
			DisplayOrder: img.DisplayOrder,
		})
	}

	return product, nil
}
