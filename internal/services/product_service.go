package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"freshcart/internal/cache"
	"freshcart/internal/models"
	"freshcart/internal/repositories"
)

// Listing sizes for the storefront home page.
const (
	TopProductsLimit      = 5
	FeaturedProductsLimit = 8
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo  repositories.ProductRepository
	cache cache.ProductCache
	now   func() time.Time
}

// NewProductService creates a new ProductService. A nil cache disables caching.
func NewProductService(repo repositories.ProductRepository, c cache.ProductCache) *ProductService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ProductService{
		repo:  repo,
		cache: c,
		now:   time.Now,
	}
}

// ListProducts returns one catalog page matching search.
func (s *ProductService) ListProducts(ctx context.Context, search string, page int) (*models.ProductPage, error) {
	q := repositories.ProductQuery{Search: strings.TrimSpace(search), Page: page}.Normalize()
	products, count, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	pages := int((count + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &models.ProductPage{Products: products, Page: q.Page, Pages: pages, Count: count}, nil
}

// TopProducts returns the best rated products.
func (s *ProductService) TopProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.Top(ctx, TopProductsLimit)
}

// FeaturedProducts returns the products flagged for the home page.
func (s *ProductService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.Featured(ctx, FeaturedProductsLimit)
}

// Categories returns the distinct product categories.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// AdminProducts returns the whole catalog for the admin console.
func (s *ProductService) AdminProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListAll(ctx)
}

// GetProductByID retrieves a single product, reading through the cache.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	if p, ok := s.cache.Get(ctx, id); ok {
		return p, nil
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, product)
	return product, nil
}

// CreateProduct validates and stores a new product. Review data supplied by
// the caller is discarded.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if err := product.Validate(); err != nil {
		return err
	}
	product.ID = ""
	product.Reviews = []models.Review{}
	product.Rating = 0
	product.NumReviews = 0
	if err := s.repo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct applies patch to the stored product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.cache.Invalidate(ctx, id)
	return product, nil
}

// DeleteProduct deletes a product by its ID. Cart lines that still reference
// it render as missing.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

// CreateReview appends user's review to the product and recomputes its rating.
func (s *ProductService) CreateReview(ctx context.Context, productID string, user *models.User, rating int, comment string) error {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	review := models.Review{
		UserID:    user.ID,
		Name:      user.Name,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: s.now(),
	}
	if err := product.AddReview(review); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	s.cache.Invalidate(ctx, productID)
	return nil
}

// Seed inserts products unless the catalog already has some. It reports how
// many were inserted.
func (s *ProductService) Seed(ctx context.Context, products []models.Product) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	for i := range products {
		if err := s.CreateProduct(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("failed to seed product %q: %w", products[i].Name, err)
		}
	}
	return len(products), nil
}
