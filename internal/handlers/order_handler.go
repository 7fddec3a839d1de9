package handlers

import (
	"freshcart/internal/middleware"
	"freshcart/internal/models"
	"freshcart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	admin := middleware.AdminOnly()

	orderRoutes := router.Group("/orders", protect)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", admin, h.HandleGetOrders)
	orderRoutes.Get("/myorders", h.HandleGetMyOrders)
	orderRoutes.Get("/admin", admin, h.HandleGetOrders)
	orderRoutes.Get("/admin/dashboard", admin, h.HandleDashboard)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Put("/:id/pay", h.HandlePayOrder)
	orderRoutes.Put("/:id/deliver", admin, h.HandleDeliverOrder)
}

// CreateOrderRequest is the checkout body. When orderItems is omitted the
// caller's cart is ordered; an empty orderItems list is rejected. The price fields are optional client totals and
// are checked against the server's own pricing.
type CreateOrderRequest struct {
	OrderItems      []models.OrderItem     `json:"orderItems" validate:"omitempty,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	ItemsPrice      *float64               `json:"itemsPrice"`
	ShippingPrice   *float64               `json:"shippingPrice"`
	TaxPrice        *float64               `json:"taxPrice"`
	TotalPrice      *float64               `json:"totalPrice"`
}

func (r CreateOrderRequest) toService() services.OrderRequest {
	return services.OrderRequest{
		Items:           r.OrderItems,
		ShippingAddress: r.ShippingAddress,
		PaymentMethod:   r.PaymentMethod,
		Claimed: services.ClaimedPrices{
			ItemsPrice:    r.ItemsPrice,
			ShippingPrice: r.ShippingPrice,
			TaxPrice:      r.TaxPrice,
			TotalPrice:    r.TotalPrice,
		},
	}
}

// PayOrderRequest is the confirmation forwarded from the payment provider.
type PayOrderRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

func (r PayOrderRequest) result() models.PaymentResult {
	return models.PaymentResult{
		ID:           r.ID,
		Status:       r.Status,
		UpdateTime:   r.UpdateTime,
		EmailAddress: r.Payer.EmailAddress,
	}
}

// HandleCreateOrder creates a new order for the caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	createdOrder, err := h.service.CreateOrder(c.UserContext(), middleware.CurrentUser(c).ID, req.toService())
	if err != nil {
		return err
	}

	// Return the created order with its new ID and a 201 Created status
	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// HandleGetOrders retrieves all orders with their owners.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleGetMyOrders retrieves the caller's orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListMyOrders(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleDashboard returns the admin sales overview.
func (h *OrderHandler) HandleDashboard(c *fiber.Ctx) error {
	summary, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), c.Params("id"), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// HandlePayOrder marks the caller's order as paid.
func (h *OrderHandler) HandlePayOrder(c *fiber.Ctx) error {
	var req PayOrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	order, err := h.service.PayOrder(c.UserContext(), c.Params("id"), middleware.CurrentUser(c), req.result())
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// HandleDeliverOrder marks an order as delivered.
func (h *OrderHandler) HandleDeliverOrder(c *fiber.Ctx) error {
	order, err := h.service.DeliverOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(order)
}
