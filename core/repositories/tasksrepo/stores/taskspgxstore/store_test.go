package taskspgxstore

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/tasker/core/repositories"
)

func TestNonNil(t *testing.T) {
	if got := nonNil(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty slice, got %#v", got)
	}
	in := []string{"a"}
	if got := nonNil(in); len(got) != 1 || got[0] != "a" {
		t.Errorf("Expected input back, got %v", got)
	}
}

func TestMapError(t *testing.T) {
	if got := mapError(pgx.ErrNoRows); !errors.Is(got, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", got)
	}

	boom := errors.New("timeout")
	if got := mapError(boom); !errors.Is(got, boom) || errors.Is(got, repositories.ErrNotFound) {
		t.Errorf("Expected wrapped driver error, got %v", got)
	}
}
