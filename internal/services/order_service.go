package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/models"
	"freshcart/internal/repositories"
)

// EventPublisher delivers order lifecycle events to a broker.
type EventPublisher interface {
	PublishOrderEvent(event models.OrderEvent) error
}

// OrderRequest is the checkout payload. When Items is nil the caller's
// server cart is used; a non-nil empty Items is rejected. Price fields are optional client-side totals.
type OrderRequest struct {
	Items           []models.OrderItem
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	Claimed         ClaimedPrices
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cartRepo    repositories.CartRepository
	userRepo    repositories.UserRepository
	publisher   EventPublisher
	now         func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(store *repositories.Store, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   store.Orders,
		productRepo: store.Products,
		cartRepo:    store.Carts,
		userRepo:    store.Users,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *OrderService) publish(eventType string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(models.NewOrderEvent(eventType, order, s.now())); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}

// lines resolves the requested lines, falling back to the caller's cart.
func (s *OrderService) lines(ctx context.Context, userID string, requested []models.OrderItem) ([]models.OrderItem, error) {
	if requested != nil {
		return requested, nil
	}
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines, nil
}

// mergeLines folds repeated products into one line, keeping first-seen order,
// so stock is checked against the total quantity per product.
func mergeLines(lines []models.OrderItem) ([]models.OrderItem, error) {
	merged := make([]models.OrderItem, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, apperr.Validation("quantity for product %s must be a positive integer", l.ProductID)
		}
		if i, ok := index[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, models.OrderItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return merged, nil
}

// reprice snapshots every line from the authoritative product record.
func (s *OrderService) reprice(ctx context.Context, requested []models.OrderItem) ([]models.OrderItem, error) {
	lines, err := mergeLines(requested)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	priced := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		product, ok := products[l.ProductID]
		if !ok {
			return nil, apperr.Validation("product %s is no longer available", l.ProductID)
		}
		if l.Quantity > product.CountInStock {
			return nil, apperr.Validation("insufficient stock for %s (requested: %d, available: %d)", product.Name, l.Quantity, product.CountInStock)
		}
		priced = append(priced, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  l.Quantity,
		})
	}
	return priced, nil
}

// CreateOrder prices and stores a new order for userID, then clears the cart.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req OrderRequest) (*models.Order, error) {
	lines, err := s.lines(ctx, userID, req.Items)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperr.Validation("no order items")
	}

	items, err := s.reprice(ctx, lines)
	if err != nil {
		return nil, err
	}
	prices := CalculatePrices(items)
	if err := prices.Check(req.Claimed); err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		UserID:          userID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      prices.ItemsPrice,
		ShippingPrice:   prices.ShippingPrice,
		TaxPrice:        prices.TaxPrice,
		TotalPrice:      prices.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	// The order is durable at this point; a stale cart is only logged.
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		log.Printf("Warning: Failed to clear cart of user %s after order %s: %v", userID, order.ID, err)
	}
	s.publish(models.OrderCreated, order)
	return order, nil
}

// GetOrder returns the order when caller owns it or is an admin.
func (s *OrderService) GetOrder(ctx context.Context, id string, caller *models.User) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(caller.ID) && !caller.IsAdmin {
		return nil, apperr.Authorization("not authorized to view this order")
	}
	if owners, err := s.userRepo.GetByIDs(ctx, []string{order.UserID}); err == nil {
		if u, ok := owners[order.UserID]; ok {
			order.User = u.Ref()
		}
	}
	return order, nil
}

// PayOrder records the payment result on the caller's order.
func (s *OrderService) PayOrder(ctx context.Context, id string, caller *models.User, result models.PaymentResult) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(caller.ID) {
		return nil, apperr.Authorization("not authorized to pay for this order")
	}
	order.MarkPaid(result, s.now())
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	s.publish(models.OrderPaid, order)
	return order, nil
}

// DeliverOrder marks an order delivered.
func (s *OrderService) DeliverOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.MarkDelivered(s.now())
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	s.publish(models.OrderDelivered, order)
	return order, nil
}

// ListMyOrders returns the caller's orders, newest first.
func (s *OrderService) ListMyOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// ListOrders returns every order, newest first, with owner names joined.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	return orders, s.joinOwners(ctx, orders)
}

func (s *OrderService) joinOwners(ctx context.Context, orders []models.Order) error {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, o := range orders {
		if _, ok := seen[o.UserID]; !ok {
			seen[o.UserID] = struct{}{}
			ids = append(ids, o.UserID)
		}
	}
	owners, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		if u, ok := owners[orders[i].UserID]; ok {
			orders[i].User = &models.UserRef{ID: u.ID, Name: u.Name}
		}
	}
	return nil
}

// Dashboard assembles the admin overview.
func (s *OrderService) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	now := s.now()

	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	allPaid, err := s.orderRepo.ListPaidSince(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	recent, err := s.orderRepo.List(ctx, RecentOrdersLimit)
	if err != nil {
		return nil, err
	}
	if err := s.joinOwners(ctx, recent); err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		TotalSales:    TotalSales(allPaid),
		TotalOrders:   totalOrders,
		TotalProducts: totalProducts,
		TotalUsers:    totalUsers,
		RecentOrders:  recent,
		SalesByMonth:  SalesByMonth(allPaid, now),
	}, nil
}
