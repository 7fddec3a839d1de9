package repositories

import (
	"context"
	"strings"

	"freshcart/internal/apperr"
	"freshcart/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *GORMProductRepository) searchScope(search string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if search == "" {
			return tx
		}
		like := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		return tx.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, like, like, like)
	}
}

// List retrieves one page of products matching q, newest first.
func (r *GORMProductRepository) List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	q = q.Normalize()
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(r.searchScope(q.Search)).Count(&count).Error; err != nil {
		return nil, 0, apperr.Persistence(err, "failed to count products")
	}

	products := make([]models.Product, 0)
	err := r.db.WithContext(ctx).Scopes(r.searchScope(q.Search)).
		Order("created_at desc").Order("id desc").
		Offset(q.Offset()).Limit(q.PageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, apperr.Persistence(err, "failed to list products")
	}
	return products, count, nil
}

// ListAll retrieves all products, newest first.
func (r *GORMProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&products).Error; err != nil {
		return nil, apperr.Persistence(err, "failed to get all products")
	}
	return products, nil
}

// Top retrieves the highest rated products.
func (r *GORMProductRepository) Top(ctx context.Context, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.WithContext(ctx).Order("rating desc").Order("created_at desc").Limit(limit).Find(&products).Error; err != nil {
		return nil, apperr.Persistence(err, "failed to get top products")
	}
	return products, nil
}

// Featured retrieves products flagged as featured.
func (r *GORMProductRepository) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.WithContext(ctx).Where("is_featured = ?", true).
		Order("created_at desc").Limit(limit).Find(&products).Error
	if err != nil {
		return nil, apperr.Persistence(err, "failed to get featured products")
	}
	return products, nil
}

// Categories retrieves the distinct non-empty categories, sorted.
func (r *GORMProductRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("category <> ?", "").
		Distinct("category").Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, apperr.Persistence(err, "failed to get product categories")
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, gormError(err, apperr.NotFound("product with ID %s not found", id), "get product by ID "+id)
	}
	return &product, nil
}

// GetByIDs retrieves the products that exist among ids, keyed by ID.
func (r *GORMProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	found := make(map[string]*models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, apperr.Persistence(err, "failed to get products")
	}
	for i := range products {
		found[products[i].ID] = &products[i]
	}
	return found, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return gormError(err, nil, "create product")
	}
	return nil
}

// Update writes every column of an existing product, including zero values.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", product.ID).Select("*").Updates(product)
	if res.Error != nil {
		return gormError(res.Error, nil, "update product")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product with ID %s not found for update", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Persistence(res.Error, "failed to delete product")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product with ID %s not found for deletion", id)
	}
	return nil
}

// Count returns the number of products.
func (r *GORMProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, apperr.Persistence(err, "failed to count products")
	}
	return count, nil
}
