package userspgxstore

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrazmi/tasker/core/repositories"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, repositories.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, repositories.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapError(tt.in); !errors.Is(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	boom := errors.New("connection reset")
	got := mapError(boom)
	if errors.Is(got, repositories.ErrNotFound) || errors.Is(got, repositories.ErrDuplicate) {
		t.Errorf("Unexpected sentinel for %v", got)
	}
	if !errors.Is(got, boom) {
		t.Error("Expected the driver error to stay wrapped")
	}
}
