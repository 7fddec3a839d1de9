package repositories

import (
	"context"

	"freshcart/internal/models"
)

// DefaultPageSize is the catalog page size used when a query does not set one.
const DefaultPageSize = 12

// ProductQuery selects one page of the catalog.
type ProductQuery struct {
	Search   string // case-insensitive match on name, category or description
	Page     int    // 1-based
	PageSize int
}

// Normalize fills in defaults for unset paging fields.
func (q ProductQuery) Normalize() ProductQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Offset is the number of products skipped before the page.
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	Top(ctx context.Context, limit int) ([]models.Product, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
