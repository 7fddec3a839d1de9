package handlers

import (
	"freshcart/internal/middleware"
	"freshcart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes. Every cart route is authenticated.
func (h *CartHandler) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	cartRoutes := router.Group("/cart", protect)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Put("/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// AddItemRequest is the body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest is the body for changing a line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGetCart returns the caller's cart joined with its products.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

// HandleAddItem adds quantity units of a product, merging with an existing line.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	cart, err := h.service.AddItem(c.UserContext(), middleware.CurrentUser(c).ID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

// HandleUpdateItem sets the quantity of the line for product :id.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	cart, err := h.service.UpdateItem(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

// HandleRemoveItem drops the line for product :id.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

// HandleClearCart empties the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(c.UserContext(), middleware.CurrentUser(c).ID); err != nil {
		return err
	}
	return message(c, fiber.StatusOK, "Cart cleared")
}
