// Package profiles provides document-store operations for Profile documents.
package profiles

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estantedigital/plataforma/internal/documents"
)

var ErrNotFound = errors.New("profile not found")

// Repository handles all Profile document operations.
type Repository struct {
	col *mongo.Collection
}

// NewRepository creates a new profiles repository.
func NewRepository(col *mongo.Collection) *Repository {
	return &Repository{col: col}
}

// Create inserts a Profile and fills its generated ObjectID.
func (r *Repository) Create(ctx context.Context, p *documents.Profile) error {
	now := time.Now()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, p)
	return err
}

// FindByEmail looks up a Profile by institutional email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*documents.Profile, error) {
	var p documents.Profile
	err := r.col.FindOne(ctx, bson.M{"emailInstitucional": email}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByID looks up a Profile by its ObjectID.
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*documents.Profile, error) {
	var p documents.Profile
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
