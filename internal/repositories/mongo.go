package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"freshcart/internal/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used by the mongo backend.
const (
	usersCollection    = "users"
	productsCollection = "products"
	cartsCollection    = "carts"
	ordersCollection   = "orders"
)

const (
	mongoReadTimeout  = 5 * time.Second
	mongoWriteTimeout = 5 * time.Second
	mongoListTimeout  = 10 * time.Second
)

// ConnectMongo opens a client against uri and verifies it with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, mongoListTimeout)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "rating", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "isPaid", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// containsInsensitive matches documents whose field contains s, ignoring case.
func containsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func equalsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

func newestFirstSort() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}

// findOne decodes a single document, mapping ErrNoDocuments onto notFound.
func findOne(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}, notFound error, action string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoReadTimeout)
	defer cancel()

	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	if err != nil {
		return apperr.Persistence(err, "failed to %s", action)
	}
	return nil
}

// findAll decodes every document matching filter into out, which must be a
// pointer to a slice.
func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}, action string, opts ...*options.FindOptions) error {
	ctx, cancel := context.WithTimeout(ctx, mongoListTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return apperr.Persistence(err, "failed to %s", action)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return apperr.Persistence(err, "failed to %s", action)
	}
	return nil
}

func countDocuments(ctx context.Context, coll *mongo.Collection, filter interface{}, what string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoReadTimeout)
	defer cancel()

	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperr.Persistence(err, "failed to count %s", what)
	}
	return n, nil
}
