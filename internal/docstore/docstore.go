// Package docstore wraps the MongoDB connection holding the Profile, User
// and Book collections.
package docstore

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estantedigital/plataforma/internal/config"
)

const (
	CollectionProfiles = "profiles"
	CollectionUsers    = "users"
	CollectionBooks    = "books"
)

// Store holds the MongoDB client and database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens and pings the document store.
func Connect(ctx context.Context, cfg config.Mongo) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("document store unreachable: %w", err)
	}

	log.Printf("Document store initialized (%s)", cfg.Database)

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Profiles() *mongo.Collection { return s.db.Collection(CollectionProfiles) }
func (s *Store) Users() *mongo.Collection    { return s.db.Collection(CollectionUsers) }
func (s *Store) Books() *mongo.Collection    { return s.db.Collection(CollectionBooks) }

// Ping checks connectivity for health reporting.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// EnsureIndexes creates the unique indexes the schemas rely on: at most
// one User per username and per institutional email, and unique book codes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.Users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "emailInstitucional", Value: 1}}, Options: unique},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = s.Profiles().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "emailInstitucional", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create profile index: %w", err)
	}

	_, err = s.Books().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create book index: %w", err)
	}

	return nil
}
