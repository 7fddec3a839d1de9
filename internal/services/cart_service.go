package services

import (
	"context"
	"fmt"

	"freshcart/internal/models"
	"freshcart/internal/repositories"
)

// CartService manages the server-side cart of authenticated users.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *CartService) view(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	view := models.NewCartView(cart, products)
	return &view, nil
}

// mutate loads the cart, applies fn and persists the whole document.
func (s *CartService) mutate(ctx context.Context, userID string, fn func(*models.Cart) error) (*models.CartView, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return s.view(ctx, cart)
}

// GetCart returns the user's cart joined with current product data.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.CartView, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// AddItem adds quantity units of an existing product.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.CartView, error) {
	if productID != "" {
		if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, userID, func(c *models.Cart) error {
		return c.AddItem(productID, quantity)
	})
}

// UpdateItem replaces the quantity of a line already in the cart.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*models.CartView, error) {
	return s.mutate(ctx, userID, func(c *models.Cart) error {
		return c.SetQuantity(productID, quantity)
	})
}

// RemoveItem drops a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.CartView, error) {
	return s.mutate(ctx, userID, func(c *models.Cart) error {
		c.RemoveItem(productID)
		return nil
	})
}

// ClearCart empties the user's cart.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.cartRepo.Clear(ctx, userID)
}
