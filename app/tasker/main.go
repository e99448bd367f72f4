package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jrazmi/tasker/app/tasker/config"
	"github.com/jrazmi/tasker/app/tasker/health"
	"github.com/jrazmi/tasker/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/tasker/bridge/repositories/usersrepobridge"
	"github.com/jrazmi/tasker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasker/core/repositories/tasksrepo/stores/tasksmongostore"
	"github.com/jrazmi/tasker/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/tasker/core/repositories/usersrepo"
	"github.com/jrazmi/tasker/core/repositories/usersrepo/stores/usersmongostore"
	"github.com/jrazmi/tasker/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/jrazmi/tasker/infrastructure/mongodb"
	"github.com/jrazmi/tasker/infrastructure/postgresdb"
	"github.com/jrazmi/tasker/infrastructure/web"
	"github.com/jrazmi/tasker/sdk/environment"
	"github.com/jrazmi/tasker/sdk/logger"
	"github.com/jrazmi/tasker/sdk/passwords"
	"github.com/jrazmi/tasker/sdk/telemetry"
	"github.com/jrazmi/tasker/sdk/tokens"
)

var build = "develop"
var appName = "TASKER"

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName, logger.WithTraceIDFn(telemetry.TraceID))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %s\n", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START DATABASES :*:
	backend := environment.GetNamespaceEnvOrDefault(appName, "STORE_BACKEND", config.BackendPostgres)
	log.InfoContext(ctx, "startup", "status", "initializing repository support", "backend", backend)

	var (
		userStorer  usersrepo.Storer
		taskStorer  tasksrepo.Storer
		statusCheck func(ctx context.Context) error
	)

	switch backend {
	case config.BackendPostgres:
		pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("configuring postgres support: %w", err)
		}
		defer func() {
			log.InfoContext(ctx, "shutdown", "status", "closing database connection")
			pg.Close()
		}()

		userStorer = userspgxstore.NewStore(log, pg)
		taskStorer = taskspgxstore.NewStore(log, pg)
		statusCheck = func(ctx context.Context) error { return postgresdb.StatusCheck(ctx, pg) }

	case config.BackendMongo:
		db, err := mongodb.NewFromEnv(appName, mongodb.WithLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("configuring mongo support: %w", err)
		}
		defer func() {
			log.InfoContext(ctx, "shutdown", "status", "closing database connection")
			mongodb.Close(context.Background(), db)
		}()

		userStorer = usersmongostore.NewStore(log, db)
		taskStorer = tasksmongostore.NewStore(log, db)
		statusCheck = func(ctx context.Context) error { return mongodb.StatusCheck(ctx, db) }

	default:
		return fmt.Errorf("unknown store backend %q", backend)
	}
	// END DATABASES //

	issuer, err := tokens.NewFromEnv(appName)
	if err != nil {
		return fmt.Errorf("configuring tokens: %w", err)
	}

	siteCfg := config.Tasker{
		Build:     build,
		Logger:    log,
		Telemetry: telemetry.NewTelemetry(),
		Repositories: config.Repositories{
			User: usersrepo.NewRepository(log, userStorer, passwords.NewBcrypt(0)),
			Task: tasksrepo.NewRepository(log, taskStorer),
		},
		Tokens:      issuer,
		StatusCheck: statusCheck,
	}

	handler, err := webHandler(siteCfg)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func webHandler(cfg config.Tasker) (http.Handler, error) {

	// INITIALIZATION
	wh, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(cfg.Logger.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithDefaultHeaders(map[string]string{"X-Content-Type-Options": "nosniff"}),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger), // Request logging
			mid.Errors(cfg.Logger), // Error handling
			mid.Panics(),           // Panic recovery
		),
	)
	if err != nil {
		return nil, err
	}

	health.AddHandlers(wh, cfg.Build, cfg.StatusCheck)

	// PUBLIC
	usersrepobridge.AddHttpRoutes(wh.Group(""), usersrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.User,
		Tokens:     cfg.Tokens,
	})

	// AUTHENTICATED
	tasksrepobridge.AddHttpRoutes(wh.Group("", mid.Authenticate(cfg.Tokens)), tasksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Task,
	})

	return wh, nil
}
