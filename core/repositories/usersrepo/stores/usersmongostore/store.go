// Package usersmongostore persists users in a mongo collection.
package usersmongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/tasker/core/repositories"
	"github.com/jrazmi/tasker/core/repositories/usersrepo"
	"github.com/jrazmi/tasker/infrastructure/mongodb"
	"github.com/jrazmi/tasker/schema"
	"github.com/jrazmi/tasker/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// document is the stored shape. The ObjectID stays inside this package.
type document struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d document) toUser() usersrepo.User {
	return usersrepo.User{
		UserID:       d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type Store struct {
	log  *logger.Logger
	coll *mongo.Collection
}

func NewStore(log *logger.Logger, db *mongodb.Database) *Store {
	return &Store{
		log:  log,
		coll: db.Collection(schema.UsersCollection),
	}
}

func (s *Store) Create(ctx context.Context, input usersrepo.NewUser) (usersrepo.User, error) {
	doc := document{
		ID:           primitive.NewObjectID(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return usersrepo.User{}, mapError(err)
	}

	return doc.toUser(), nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (usersrepo.User, error) {
	var doc document
	if err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		return usersrepo.User{}, mapError(err)
	}
	return doc.toUser(), nil
}

func mapError(err error) error {
	err = mongodb.HandleMongoError(err)
	switch {
	case errors.Is(err, mongodb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, mongodb.ErrDBDuplicatedEntry):
		return repositories.ErrDuplicate
	}
	return fmt.Errorf("users store: %w", err)
}
