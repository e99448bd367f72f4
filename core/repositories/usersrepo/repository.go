// Package usersrepo registers and authenticates accounts.
package usersrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jrazmi/tasker/core/repositories"
	"github.com/jrazmi/tasker/sdk/logger"
	"github.com/jrazmi/tasker/sdk/passwords"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Storer defines the data storage interface for User.
type Storer interface {
	Create(ctx context.Context, input NewUser) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

// Repository provides access to user storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
	hasher passwords.Hasher
	now    func() time.Time
}

// NewRepository creates a new User repository
func NewRepository(log *logger.Logger, storer Storer, hasher passwords.Hasher) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
		hasher: hasher,
		now:    time.Now,
	}
}

// Signup stores a new account. Usernames are compared exactly after
// trimming surrounding space.
func (r *Repository) Signup(ctx context.Context, input Signup) (User, error) {
	if err := input.Validate(); err != nil {
		return User{}, err
	}
	username := strings.TrimSpace(input.Username)

	_, err := r.storer.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return User{}, ErrUsernameTaken
	case !errors.Is(err, repositories.ErrNotFound):
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := r.hasher.Hash(input.Password)
	if err != nil {
		return User{}, fmt.Errorf("signup: %w", err)
	}

	user, err := r.storer.Create(ctx, NewUser{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		CreatedAt:    r.now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		// a concurrent signup can win between lookup and insert
		if errors.Is(err, repositories.ErrDuplicate) {
			return User{}, ErrUsernameTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	r.log.InfoContext(ctx, "user registered", "user_id", user.UserID)
	return user, nil
}

// Authenticate returns the user whose password matches. An unknown username
// and a wrong password are both ErrInvalidCredentials.
func (r *Repository) Authenticate(ctx context.Context, input Credentials) (User, error) {
	if err := input.Validate(); err != nil {
		return User{}, err
	}

	user, err := r.storer.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	if !r.hasher.Check(input.Password, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
