// Package userspgxstore persists users in postgres.
package userspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/tasker/core/repositories"
	"github.com/jrazmi/tasker/core/repositories/usersrepo"
	"github.com/jrazmi/tasker/infrastructure/postgresdb"
	"github.com/jrazmi/tasker/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Create(ctx context.Context, input usersrepo.NewUser) (usersrepo.User, error) {
	query := `INSERT INTO users (user_id, username, email, password_hash, created_at)
		VALUES (@user_id, @username, @email, @password_hash, @created_at)
		RETURNING user_id, username, email, password_hash, created_at`

	args := pgx.NamedArgs{
		"user_id":       uuid.NewString(),
		"username":      input.Username,
		"email":         input.Email,
		"password_hash": input.PasswordHash,
		"created_at":    input.CreatedAt,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, mapError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return usersrepo.User{}, mapError(err)
	}

	return user, nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (usersrepo.User, error) {
	query := `SELECT user_id, username, email, password_hash, created_at
		FROM users
		WHERE username = @username`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"username": username})
	if err != nil {
		return usersrepo.User{}, mapError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return usersrepo.User{}, mapError(err)
	}

	return user, nil
}

func mapError(err error) error {
	err = postgresdb.HandlePgError(err)
	switch {
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry):
		return repositories.ErrDuplicate
	}
	return fmt.Errorf("users store: %w", err)
}
