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

// MongoUserRepository is a MongoDB implementation of UserRepository.
// Email uniqueness is enforced by the index created in EnsureIndexes.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection(usersCollection),
	}
}

// Create inserts a new user.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	if user.ID == "" {
		user.ID = newID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Duplicate("email '%s' already registered", user.Email)
		}
		return apperr.Persistence(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := findOne(ctx, r.collection, bson.M{"_id": id}, &user, apperr.NotFound("user with ID %s not found", id), "get user by ID "+id); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := findOne(ctx, r.collection, bson.M{"email": equalsInsensitive(email)}, &user, apperr.NotFound("user with email %s not found", email), "get user by email"); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDs retrieves the users that exist among ids, keyed by ID.
func (r *MongoUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	found := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var users []models.User
	if err := findAll(ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}}, &users, "get users"); err != nil {
		return nil, err
	}
	for i := range users {
		found[users[i].ID] = &users[i]
	}
	return found, nil
}

// List retrieves all users ordered by creation time.
func (r *MongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	err := findAll(ctx, r.collection, bson.M{}, &users, "list users", opts)
	return users, err
}

// Update replaces an existing user document.
func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	user.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Duplicate("email '%s' already registered", user.Email)
		}
		return apperr.Persistence(err, "failed to update user")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user with ID %s not found for update", user.ID)
	}
	return nil
}

// Delete removes a user by ID.
func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Persistence(err, "failed to delete user")
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("user with ID %s not found for deletion", id)
	}
	return nil
}

// Count returns the number of users.
func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	return countDocuments(ctx, r.collection, bson.M{}, "users")
}

// HasAdmin reports whether any admin account exists.
func (r *MongoUserRepository) HasAdmin(ctx context.Context) (bool, error) {
	n, err := countDocuments(ctx, r.collection, bson.M{"isAdmin": true}, "admin accounts")
	return n > 0, err
}
