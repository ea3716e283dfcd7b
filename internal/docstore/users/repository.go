// Package users provides document-store operations for User documents.
package users

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estantedigital/plataforma/internal/documents"
)

var ErrNotFound = errors.New("user document not found")

// Repository handles all User document operations.
type Repository struct {
	col *mongo.Collection
}

// NewRepository creates a new document users repository.
func NewRepository(col *mongo.Collection) *Repository {
	return &Repository{col: col}
}

// Create inserts a User and fills its generated ObjectID.
func (r *Repository) Create(ctx context.Context, u *documents.User) error {
	now := time.Now()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, u)
	return err
}

// FindByEmail looks up a User by institutional email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*documents.User, error) {
	var u documents.User
	err := r.col.FindOne(ctx, bson.M{"emailInstitucional": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetProfileID backfills the profile reference on a User. Only documents
// whose reference is still null are touched: an existing reference is
// never overwritten.
func (r *Repository) SetProfileID(ctx context.Context, id, profileID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "profileId": nil},
		bson.M{"$set": bson.M{"profileId": profileID, "updatedAt": time.Now()}},
	)
	return err
}

// UpdateLastLogin stamps the last successful signin.
func (r *Repository) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"emailInstitucional": email},
		bson.M{"$set": bson.M{"lastLogin": at, "updatedAt": at}},
	)
	return err
}
