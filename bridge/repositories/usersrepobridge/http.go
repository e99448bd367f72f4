// Package usersrepobridge exposes account registration and login over HTTP.
package usersrepobridge

import (
	"github.com/jrazmi/tasker/core/repositories/usersrepo"
	"github.com/jrazmi/tasker/infrastructure/web"
	"github.com/jrazmi/tasker/sdk/logger"
)

// TokenIssuer signs a bearer token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Config holds configuration for the User bridge
type Config struct {
	Log        *logger.Logger
	Repository *usersrepo.Repository
	Tokens     TokenIssuer
	Middleware []web.Middleware
}

// AddHttpRoutes registers the signup and login routes. Neither requires a
// token.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.POST("/signup", b.httpSignup, cfg.Middleware...)
	group.POST("/login", b.httpLogin, cfg.Middleware...)
}
