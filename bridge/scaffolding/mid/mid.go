// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/tasker/infrastructure/web"
)

type ctxKey int

const userIDKey ctxKey = 1

func setUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the user id from the context.
func GetUserID(ctx context.Context) (string, error) {
	v, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return "", errors.New("user id not found in context")
	}

	return v, nil
}

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}

// statusOf mirrors the status web.Respond will write for e.
func statusOf(e web.Encoder) int {
	switch v := e.(type) {
	case nil:
		return http.StatusNoContent
	case interface{ HTTPStatus() int }:
		return v.HTTPStatus()
	case error:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
