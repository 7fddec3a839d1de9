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

// MongoCartRepository is a MongoDB implementation of CartRepository.
// Carts are keyed by user ID.
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{
		collection: db.Collection(cartsCollection),
	}
}

// Get returns the user's cart, or an empty one.
func (r *MongoCartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := findOne(ctx, r.collection, bson.M{"_id": userID}, &cart, errNoCart, "get cart")
	if err == errNoCart {
		return models.NewCart(userID), nil
	}
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

var errNoCart = apperr.NotFound("cart not found")

// Save upserts the cart items.
func (r *MongoCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": cart.UserID},
		bson.M{"$set": bson.M{"items": cart.Items, "updatedAt": cart.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperr.Persistence(err, "failed to save cart")
	}
	return nil
}

// Clear empties the user's cart.
func (r *MongoCartRepository) Clear(ctx context.Context, userID string) error {
	return r.Save(ctx, models.NewCart(userID))
}
