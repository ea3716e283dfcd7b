// Package books provides document-store operations for the book catalog.
package books

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estantedigital/plataforma/internal/documents"
)

var (
	ErrNotFound      = errors.New("book not found")
	ErrDuplicateCode = errors.New("book code already exists")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Repository handles all Book document operations.
type Repository struct {
	col *mongo.Collection
}

// NewRepository creates a new books repository.
func NewRepository(col *mongo.Collection) *Repository {
	return &Repository{col: col}
}

// Create inserts a Book and fills its generated ObjectID.
func (r *Repository) Create(ctx context.Context, b *documents.Book) error {
	now := time.Now()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.Language == "" {
		b.Language = "pt-BR"
	}
	b.Status = true
	b.IsActive = true
	if b.Documentations == nil {
		b.Documentations = []string{}
	}
	b.Comments = []documents.Comment{}
	b.Ratings = []documents.Rating{}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateCode
	}
	return err
}

// List returns active books, most recent first.
func (r *Repository) List(ctx context.Context) ([]documents.Book, error) {
	cursor, err := r.col.Find(ctx,
		bson.M{"isActive": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []documents.Book
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID looks up a book and increments its view counter.
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*documents.Book, error) {
	var b documents.Book
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Update applies the given field changes to a book.
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, changes bson.M) (*documents.Book, error) {
	changes["updatedAt"] = time.Now()

	var b documents.Book
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": changes},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// SoftDelete deactivates a book without removing the document.
func (r *Repository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "status": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddComment appends a reader comment to a book.
func (r *Repository) AddComment(ctx context.Context, id, userID primitive.ObjectID, text string) error {
	comment := documents.Comment{User: userID, Comment: text, Date: time.Now()}
	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddRating records a reader rating, replacing the user's previous one.
func (r *Repository) AddRating(ctx context.Context, id, userID primitive.ObjectID, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	// Drop any previous rating by this user before pushing the new one.
	if _, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"ratings": bson.M{"user": userID}}},
	); err != nil {
		return err
	}

	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$push": bson.M{"ratings": documents.Rating{User: userID, Rating: rating}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
