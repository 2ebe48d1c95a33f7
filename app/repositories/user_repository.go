package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/pkg/database"
)

// ErrNoUser is returned when a lookup finds no matching user.
var ErrNoUser = mongo.ErrNoDocuments

// UserRepository handles record-store operations for User. Like
// ProductRepository, the collection handle is resolved per call.
type UserRepository struct {
	collection string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{collection: "users"}
}

func (r *UserRepository) col() *mongo.Collection {
	return database.Collection(r.collection)
}

// FindByEmail looks a user up by their email address.
// Returns ErrNoUser when the email is unknown.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.col().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return u, ErrNoUser
		}
		return u, fmt.Errorf("users: find by email: %w", err)
	}
	return u, nil
}

// Insert persists a new user and fills in the generated identifier.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if _, err := r.col().InsertOne(ctx, u); err != nil {
		return fmt.Errorf("users: insert: %w", err)
	}
	return nil
}
