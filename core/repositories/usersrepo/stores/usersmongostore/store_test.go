package usersmongostore

import (
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/tasker/core/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestToUser(t *testing.T) {
	id := primitive.NewObjectID()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	u := document{ID: id, Username: "alice", Email: "a@example.com", PasswordHash: "h", CreatedAt: created}.toUser()

	if u.UserID != id.Hex() {
		t.Errorf("Expected hex id %s, got %s", id.Hex(), u.UserID)
	}
	if u.CreatedAt.Location() != time.UTC || !u.CreatedAt.Equal(created) {
		t.Errorf("Expected UTC created_at, got %v", u.CreatedAt)
	}
}

func TestMapError(t *testing.T) {
	if got := mapError(mongo.ErrNoDocuments); !errors.Is(got, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", got)
	}

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	if got := mapError(dup); !errors.Is(got, repositories.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", got)
	}
}
