package handlers

import (
	"freshcart/internal/middleware"
	"freshcart/internal/models"
	"freshcart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. Fixed paths are registered
// before /:id so they are not captured as IDs.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	admin := middleware.AdminOnly()

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/top", h.HandleTopProducts)
	productRoutes.Get("/featured", h.HandleFeaturedProducts)
	productRoutes.Get("/categories", h.HandleCategories)
	productRoutes.Get("/admin", protect, admin, h.HandleAdminProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	productRoutes.Post("/", protect, admin, h.HandleCreateProduct)
	productRoutes.Put("/:id", protect, admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", protect, admin, h.HandleDeleteProduct)
	productRoutes.Post("/:id/reviews", protect, h.HandleCreateReview)
}

// HandleListProducts returns one page of the catalog.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page, err := h.service.ListProducts(c.UserContext(), c.Query("search"), c.QueryInt("page", 1))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleTopProducts returns the best rated products.
func (h *ProductHandler) HandleTopProducts(c *fiber.Ctx) error {
	products, err := h.service.TopProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleFeaturedProducts returns the products flagged for the home page.
func (h *ProductHandler) HandleFeaturedProducts(c *fiber.Ctx) error {
	products, err := h.service.FeaturedProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleCategories returns the distinct product categories.
func (h *ProductHandler) HandleCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// HandleAdminProducts returns the whole catalog without paging.
func (h *ProductHandler) HandleAdminProducts(c *fiber.Ctx) error {
	products, err := h.service.AdminProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// ProductRequest is the body for creating a product.
type ProductRequest struct {
	Name         string  `json:"name" form:"name" validate:"required"`
	Price        float64 `json:"price" form:"price" validate:"gte=0"`
	Category     string  `json:"category" form:"category"`
	Brand        string  `json:"brand" form:"brand"`
	Description  string  `json:"description" form:"description"`
	CountInStock int     `json:"countInStock" form:"countInStock" validate:"gte=0"`
	Image        string  `json:"image" form:"-"`
	IsFeatured   bool    `json:"isFeatured" form:"isFeatured"`
}

func (r ProductRequest) product() *models.Product {
	return &models.Product{
		Name:         r.Name,
		Price:        r.Price,
		Category:     r.Category,
		Brand:        r.Brand,
		Description:  r.Description,
		CountInStock: r.CountInStock,
		Image:        r.Image,
		IsFeatured:   r.IsFeatured,
	}
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product := req.product()
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update. Fields absent from the body
// keep their stored value.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var patch models.ProductPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return message(c, fiber.StatusOK, "Product removed")
}

// ReviewRequest is the body for reviewing a product.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// HandleCreateReview adds the caller's review to a product.
func (h *ProductHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	err := h.service.CreateReview(c.UserContext(), c.Params("id"), middleware.CurrentUser(c), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return message(c, fiber.StatusCreated, "Review added")
}
