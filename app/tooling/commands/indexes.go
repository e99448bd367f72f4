package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/jrazmi/tasker/infrastructure/mongodb"
	"github.com/jrazmi/tasker/schema"
	"github.com/jrazmi/tasker/sdk/logger"
)

// Indexes creates the mongo indexes the stores rely on, including the
// unique username index.
func Indexes(ctx context.Context, log *logger.Logger, db *mongodb.Database) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	log.InfoContext(ctx, "index creation started", "database", db.Name())

	if err := mongodb.EnsureIndexes(ctx, db, schema.MongoIndexes()); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	log.InfoContext(ctx, "indexes created successfully")
	return nil
}
