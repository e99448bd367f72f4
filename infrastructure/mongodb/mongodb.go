// Package mongodb opens and checks document store connections and maps
// driver errors onto package sentinels.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrazmi/tasker/sdk/environment"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Set of error variables for CRUD operations.
var (
	ErrDBNotFound        = mongo.ErrNoDocuments
	ErrDBDuplicatedEntry = errors.New("duplicated entry")
)

type Database = mongo.Database

// Options represents the exportable database configuration
type Options struct {
	URI            string        `env:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DATABASE" default:"tasker"`
	MaxPoolSize    int           `env:"MONGO_MAX_POOL_SIZE" default:"25"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" default:"10s"`
	LogCommands    bool          `env:"MONGO_LOG_COMMANDS" default:"false"`
}

type settings struct {
	cfg    Options
	logger *slog.Logger
}

// Option is a function that configures the database options
type Option func(*settings)

// WithLogger sets the logger used for command logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *settings) {
		o.logger = logger
	}
}

// WithURI overrides the connection string.
func WithURI(uri string) Option {
	return func(o *settings) {
		o.cfg.URI = uri
	}
}

// WithLogCommands enables or disables command logging
func WithLogCommands(enable bool) Option {
	return func(o *settings) {
		o.cfg.LogCommands = enable
	}
}

// NewFromEnv connects using environment variables
func NewFromEnv(prefix string, opts ...Option) (*mongo.Database, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing mongo config: %w", err)
	}
	return newDatabase(cfg, opts...)
}

func newDatabase(cfg Options, opts ...Option) (*mongo.Database, error) {
	o := &settings{cfg: cfg}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.cfg.Database == "" {
		return nil, errors.New("mongo database name is required")
	}

	clientOpts := options.Client().
		ApplyURI(o.cfg.URI).
		SetMaxPoolSize(uint64(o.cfg.MaxPoolSize)).
		SetConnectTimeout(o.cfg.ConnectTimeout)
	if o.cfg.LogCommands {
		clientOpts.SetMonitor(NewLoggingMonitor(o.logger))
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client.Database(o.cfg.Database), nil
}

// Close disconnects the client behind db.
func Close(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}

// StatusCheck returns nil if it can successfully talk to the database
func StatusCheck(ctx context.Context, db *mongo.Database) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}

	return db.Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the given indexes per collection. Existing indexes
// with the same definition are left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database, indexes map[string][]mongo.IndexModel) error {
	for coll, models := range indexes {
		if len(models) == 0 {
			continue
		}
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// HandleMongoError converts driver errors to the package sentinels.
func HandleMongoError(err error) error {
	if err == nil {
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrDBDuplicatedEntry
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrDBNotFound
	}

	return err
}

// NewLoggingMonitor logs command names and durations at debug level.
// Command bodies are not logged since they carry password hashes.
func NewLoggingMonitor(logger *slog.Logger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(ctx context.Context, e *event.CommandStartedEvent) {
			logger.DebugContext(ctx, "command start",
				slog.String("command", e.CommandName),
				slog.String("database", e.DatabaseName),
				slog.Int64("request_id", e.RequestID),
			)
		},
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			logger.DebugContext(ctx, "command end",
				slog.String("command", e.CommandName),
				slog.Int64("request_id", e.RequestID),
				slog.Duration("elapsed", e.Duration),
			)
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			logger.ErrorContext(ctx, "command end",
				slog.String("command", e.CommandName),
				slog.Int64("request_id", e.RequestID),
				slog.String("error", e.Failure),
				slog.Duration("elapsed", e.Duration),
			)
		},
	}
}
