package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/grama/internal/config"
	"github.com/example/grama/internal/handlers"
	"github.com/example/grama/internal/middleware"
	"github.com/example/grama/internal/models"
	"github.com/example/grama/internal/otp"
	"github.com/example/grama/internal/promo"
	"github.com/example/grama/internal/services"
	"github.com/example/grama/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	snapshots := store.NewGormAdapter(db)
	validator := promo.NewValidator(db)
	manager := otp.NewManager(
		otp.NewChallengeRepository(db),
		otp.NewUserDirectory(db),
		services.NewSender(cfg),
		cfg.OTPTTL,
		cfg.OTPMaxResends,
	)

	authHandler := handlers.NewAuthHandler(manager, snapshots, cfg)
	promoHandler := handlers.NewPromoHandler(validator)
	cartHandler := handlers.NewCartHandler(db, snapshots, validator)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db, snapshots, validator)
	profileHandler := handlers.NewProfileHandler(db, snapshots)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/send-otp", authHandler.SendOTP)
	auth.Post("/resend-otp", authHandler.ResendOTP)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Get("/session", middleware.AuthMiddleware(cfg), authHandler.Session)
	auth.Post("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)

	// Promo validation for the storefront cart
	api.Post("/promo/validate", promoHandler.Validate)

	// Public catalog
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)

	vendors := api.Group("/vendors")
	vendors.Get("/", catalogHandler.ListVendors)
	vendors.Get("/:id", catalogHandler.GetVendor)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)

	// Catalog management (vendor dashboard / admin)
	manage := api.Group("", middleware.AuthMiddleware(cfg),
		middleware.RequireRoles(models.RoleVendor, models.RoleAdmin))
	manage.Post("/categories", catalogHandler.CreateCategory)
	manage.Put("/categories/:id", catalogHandler.UpdateCategory)
	manage.Delete("/categories/:id", catalogHandler.DeleteCategory)
	manage.Post("/products", productHandler.CreateProduct)
	manage.Put("/products/:id", productHandler.UpdateProduct)
	manage.Delete("/products/:id", productHandler.DeleteProduct)

	// Shopper routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:id", cartHandler.UpdateItem)
	protected.Delete("/cart/items/:id", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.ClearCart)
	protected.Post("/cart/promo", cartHandler.ApplyPromo)
	protected.Delete("/cart/promo", cartHandler.RemovePromo)

	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)
	protected.Get("/profile/addresses", profileHandler.ListAddresses)
	protected.Post("/profile/addresses", profileHandler.CreateAddress)
	protected.Put("/profile/addresses/:id", profileHandler.UpdateAddress)
	protected.Delete("/profile/addresses/:id", profileHandler.DeleteAddress)
	protected.Get("/profile/preferences", profileHandler.GetPreferences)
	protected.Put("/profile/preferences", profileHandler.UpdatePreferences)
}
