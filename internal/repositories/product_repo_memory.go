package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

func (r *MemoryProductRepository) snapshot() []models.Product {
	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, cloneProduct(p))
	}
	sortProductsNewest(list)
	return list
}

// List returns one page of products matching q, newest first.
func (r *MemoryProductRepository) List(_ context.Context, q ProductQuery) ([]models.Product, int64, error) {
	q = q.Normalize()
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0)
	for _, p := range r.snapshot() {
		if matchesSearch(&p, q.Search) {
			matched = append(matched, p)
		}
	}
	return page(matched, q.Offset(), q.PageSize), int64(len(matched)), nil
}

// ListAll returns every product, newest first.
func (r *MemoryProductRepository) ListAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

// Top returns the highest rated products.
func (r *MemoryProductRepository) Top(_ context.Context, limit int) ([]models.Product, error) {
	r.mu.RLock()
	list := r.snapshot()
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool { return list[i].Rating > list[j].Rating })
	return page(list, 0, limit), nil
}

// Featured returns products flagged as featured.
func (r *MemoryProductRepository) Featured(_ context.Context, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	featured := make([]models.Product, 0)
	for _, p := range r.snapshot() {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	return page(featured, 0, limit), nil
}

// Categories returns the distinct non-empty categories, sorted.
func (r *MemoryProductRepository) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range r.products {
		if _, ok := seen[p.Category]; ok || p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product with ID %s not found", id)
	}
	product = cloneProduct(product)
	return &product, nil
}

// GetByIDs returns the products that exist among ids, keyed by ID.
func (r *MemoryProductRepository) GetByIDs(_ context.Context, ids []string) (map[string]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[string]*models.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			p = cloneProduct(p)
			found[id] = &p
		}
	}
	return found, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = newID()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

// Update replaces an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperr.NotFound("product with ID %s not found for update", product.ID)
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperr.NotFound("product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	return nil
}

// Count returns the number of products.
func (r *MemoryProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}
