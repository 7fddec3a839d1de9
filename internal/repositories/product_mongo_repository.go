package repositories

import (
	"context"
	"sort"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
// Reviews are embedded in the product document.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection(productsCollection),
	}
}

func productSearchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	re := containsInsensitive(search)
	return bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"category": re},
		bson.M{"description": re},
	}}
}

// List retrieves one page of products matching q, newest first.
func (r *MongoProductRepository) List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	q = q.Normalize()
	filter := productSearchFilter(q.Search)

	count, err := countDocuments(ctx, r.collection, filter, "products")
	if err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0)
	opts := options.Find().
		SetSort(newestFirstSort()).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.PageSize))
	if err := findAll(ctx, r.collection, filter, &products, "list products", opts); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

// ListAll retrieves all products, newest first.
func (r *MongoProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := findAll(ctx, r.collection, bson.M{}, &products, "get all products", options.Find().SetSort(newestFirstSort()))
	return products, err
}

// Top retrieves the highest rated products.
func (r *MongoProductRepository) Top(ctx context.Context, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	err := findAll(ctx, r.collection, bson.M{}, &products, "get top products", opts)
	return products, err
}

// Featured retrieves products flagged as featured.
func (r *MongoProductRepository) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	opts := options.Find().SetSort(newestFirstSort()).SetLimit(int64(limit))
	err := findAll(ctx, r.collection, bson.M{"isFeatured": true}, &products, "get featured products", opts)
	return products, err
}

// Categories retrieves the distinct non-empty categories, sorted.
func (r *MongoProductRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoReadTimeout)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "category", bson.M{"category": bson.M{"$ne": ""}})
	if err != nil {
		return nil, apperr.Persistence(err, "failed to get product categories")
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// GetByID retrieves a product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := findOne(ctx, r.collection, bson.M{"_id": id}, &product, apperr.NotFound("product with ID %s not found", id), "get product by ID "+id); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDs retrieves the products that exist among ids, keyed by ID.
func (r *MongoProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	found := make(map[string]*models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var products []models.Product
	if err := findAll(ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}}, &products, "get products"); err != nil {
		return nil, err
	}
	for i := range products {
		found[products[i].ID] = &products[i]
	}
	return found, nil
}

// Create inserts a new product.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	if product.ID == "" {
		product.ID = newID()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Duplicate("product with ID %s already exists", product.ID)
		}
		return apperr.Persistence(err, "failed to create product")
	}
	return nil
}

// Update replaces an existing product document.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	product.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return apperr.Persistence(err, "failed to update product")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("product with ID %s not found for update", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Persistence(err, "failed to delete product")
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("product with ID %s not found for deletion", id)
	}
	return nil
}

// Count returns the number of products.
func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	return countDocuments(ctx, r.collection, bson.M{}, "products")
}
