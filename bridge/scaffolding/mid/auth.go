package mid

import (
	"context"
	"net/http"

	"github.com/jrazmi/tasker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasker/infrastructure/web"
	"github.com/jrazmi/tasker/sdk/tokens"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (tokens.Claims, error)
}

// Authenticate requires a valid bearer token and places the user id it
// carries in the context. See GetUserID.
func Authenticate(verifier TokenVerifier) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			token, ok := web.BearerToken(r)
			if !ok {
				return errs.Newf(errs.Unauthenticated, "Missing authorization token")
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return errs.Newf(errs.Unauthenticated, "Invalid or expired token")
			}

			return next(setUserID(ctx, claims.UserID), r)
		}
	}
}
