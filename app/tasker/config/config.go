package config

import (
	"context"

	"github.com/jrazmi/tasker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasker/core/repositories/usersrepo"
	"github.com/jrazmi/tasker/sdk/logger"
	"github.com/jrazmi/tasker/sdk/telemetry"
	"github.com/jrazmi/tasker/sdk/tokens"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Repositories are the repositories this instance of tasker serves.
type Repositories struct {
	User *usersrepo.Repository
	Task *tasksrepo.Repository
}

// Tasker is the overall configuration for the tasker application.
type Tasker struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry

	Repositories Repositories
	Tokens       *tokens.Issuer

	// StatusCheck pings whichever store backs the repositories.
	StatusCheck func(ctx context.Context) error
}
