// Package app assembles the storefront HTTP application.
package app

import (
	"time"

	"freshcart/internal/cache"
	"freshcart/internal/config"
	"freshcart/internal/handlers"
	"freshcart/internal/middleware"
	"freshcart/internal/repositories"
	"freshcart/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services bundles the business layer built on top of a Store.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService
	Uploads  *services.UploadService
}

// NewServices wires every service to store. productCache and publisher may be nil.
func NewServices(cfg *config.Config, store *repositories.Store, productCache cache.ProductCache, publisher services.EventPublisher) *Services {
	products := services.NewProductService(store.Products, productCache)
	return &Services{
		Auth:     services.NewAuthService(store.Users, cfg.JWTSecret, cfg.TokenTTL),
		Users:    services.NewUserService(store.Users),
		Products: products,
		Carts:    services.NewCartService(store.Carts, store.Products),
		Orders:   services.NewOrderService(store, publisher),
		Uploads:  services.NewUploadService(products),
	}
}

// New builds the Fiber app with every route mounted under /api.
func New(cfg *config.Config, svc *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "freshcart",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(middleware.Timeout(cfg.RequestTimeout))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API is running..."})
	})

	protect := middleware.Protect(svc.Auth)
	handlers.NewUserHandler(svc.Auth, svc.Users).RegisterRoutes(api, protect)
	handlers.NewProductHandler(svc.Products).RegisterRoutes(api, protect)
	handlers.NewCartHandler(svc.Carts).RegisterRoutes(api, protect)
	handlers.NewOrderHandler(svc.Orders).RegisterRoutes(api, protect)
	handlers.NewUploadHandler(svc.Uploads).RegisterRoutes(api)

	return app
}
