package repositories

import (
	"context"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepository is a MongoDB implementation of OrderRepository.
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates a new instance of MongoOrderRepository.
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection(ordersCollection),
	}
}

// Create inserts a new order.
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	if order.ID == "" {
		order.ID = newID()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return apperr.Persistence(err, "failed to create order")
	}
	return nil
}

// GetByID retrieves an order by its ID.
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := findOne(ctx, r.collection, bson.M{"_id": id}, &order, apperr.NotFound("order with ID %s not found", id), "get order by ID "+id); err != nil {
		return nil, err
	}
	return &order, nil
}

// Update replaces an existing order document.
func (r *MongoOrderRepository) Update(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return apperr.Persistence(err, "failed to update order")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("order with ID %s not found for update", order.ID)
	}
	return nil
}

// ListByUser retrieves the user's orders, newest first.
func (r *MongoOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := findAll(ctx, r.collection, bson.M{"user": userID}, &orders, "get user orders", options.Find().SetSort(newestFirstSort()))
	return orders, err
}

// List retrieves up to limit orders, newest first.
func (r *MongoOrderRepository) List(ctx context.Context, limit int) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	opts := options.Find().SetSort(newestFirstSort())
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	err := findAll(ctx, r.collection, bson.M{}, &orders, "list orders", opts)
	return orders, err
}

// ListPaidSince retrieves paid orders created at or after since.
func (r *MongoOrderRepository) ListPaidSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	filter := bson.M{"isPaid": true, "createdAt": bson.M{"$gte": since}}
	err := findAll(ctx, r.collection, filter, &orders, "list paid orders", options.Find().SetSort(newestFirstSort()))
	return orders, err
}

// Count returns the number of orders.
func (r *MongoOrderRepository) Count(ctx context.Context) (int64, error) {
	return countDocuments(ctx, r.collection, bson.M{}, "orders")
}
