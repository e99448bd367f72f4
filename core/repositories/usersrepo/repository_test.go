package usersrepo_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/jrazmi/tasker/core/repositories"
	"github.com/jrazmi/tasker/core/repositories/usersrepo"
	"github.com/jrazmi/tasker/sdk/logger"
	"github.com/jrazmi/tasker/sdk/passwords"
	"golang.org/x/crypto/bcrypt"
)

// ============================================================================
// Stubbed Storer Implementation
// ============================================================================

type StubStorer struct {
	mu     sync.Mutex
	users  map[string]usersrepo.User
	nextID int

	createErr error
	lookupErr error
}

func NewStubStorer() *StubStorer {
	return &StubStorer{users: make(map[string]usersrepo.User)}
}

func (s *StubStorer) Create(ctx context.Context, input usersrepo.NewUser) (usersrepo.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return usersrepo.User{}, s.createErr
	}
	if _, ok := s.users[input.Username]; ok {
		return usersrepo.User{}, repositories.ErrDuplicate
	}

	s.nextID++
	u := usersrepo.User{
		UserID:       fmt.Sprintf("user-%d", s.nextID),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	s.users[u.Username] = u
	return u, nil
}

func (s *StubStorer) GetByUsername(ctx context.Context, username string) (usersrepo.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lookupErr != nil {
		return usersrepo.User{}, s.lookupErr
	}
	u, ok := s.users[username]
	if !ok {
		return usersrepo.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func newRepo(storer usersrepo.Storer) *usersrepo.Repository {
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	return usersrepo.NewRepository(log, storer, passwords.NewBcrypt(bcrypt.MinCost))
}

// ============================================================================
// Tests
// ============================================================================

func TestSignup(t *testing.T) {
	ctx := context.Background()
	store := NewStubStorer()
	repo := newRepo(store)

	user, err := repo.Signup(ctx, usersrepo.Signup{Username: "alice", Email: "a@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.UserID == "" {
		t.Error("Expected a generated user id")
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Error("Expected the password to be stored hashed")
	}

	_, err = repo.Signup(ctx, usersrepo.Signup{Username: "alice", Email: "other@example.com", Password: "other"})
	if !errors.Is(err, usersrepo.ErrUsernameTaken) {
		t.Fatalf("Expected ErrUsernameTaken, got %v", err)
	}

	stored, _ := store.GetByUsername(ctx, "alice")
	if stored.Email != "a@example.com" || stored.PasswordHash != user.PasswordHash {
		t.Error("Duplicate signup must not alter the existing user")
	}
}

func TestSignup_MissingFields(t *testing.T) {
	tests := map[string]usersrepo.Signup{
		"no username":    {Email: "a@example.com", Password: "p"},
		"blank username": {Username: "  ", Email: "a@example.com", Password: "p"},
		"no email":       {Username: "alice", Password: "p"},
		"no password":    {Username: "alice", Email: "a@example.com"},
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			store := NewStubStorer()
			_, err := newRepo(store).Signup(context.Background(), input)
			if !errors.Is(err, usersrepo.ErrMissingFields) {
				t.Errorf("Expected ErrMissingFields, got %v", err)
			}
			if len(store.users) != 0 {
				t.Error("Expected nothing stored")
			}
		})
	}
}

func TestSignup_RaceMapsToConflict(t *testing.T) {
	store := NewStubStorer()
	store.createErr = repositories.ErrDuplicate

	_, err := newRepo(store).Signup(context.Background(), usersrepo.Signup{Username: "bob", Email: "b@example.com", Password: "p"})
	if !errors.Is(err, usersrepo.ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
}

func TestSignup_StoreFailure(t *testing.T) {
	store := NewStubStorer()
	store.lookupErr = errors.New("connection refused")

	_, err := newRepo(store).Signup(context.Background(), usersrepo.Signup{Username: "bob", Email: "b@example.com", Password: "p"})
	if err == nil || errors.Is(err, usersrepo.ErrUsernameTaken) {
		t.Errorf("Expected a store error, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(NewStubStorer())

	created, err := repo.Signup(ctx, usersrepo.Signup{Username: "alice", Email: "a@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	got, err := repo.Authenticate(ctx, usersrepo.Credentials{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.UserID != created.UserID {
		t.Errorf("Expected %s, got %s", created.UserID, got.UserID)
	}

	tests := map[string]usersrepo.Credentials{
		"wrong password": {Username: "alice", Password: "nope"},
		"unknown user":   {Username: "mallory", Password: "s3cret"},
	}
	for name, creds := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.Authenticate(ctx, creds); !errors.Is(err, usersrepo.ErrInvalidCredentials) {
				t.Errorf("Expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
