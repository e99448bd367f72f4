package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jrazmi/tasker/app/tooling/commands"
	"github.com/jrazmi/tasker/infrastructure/mongodb"
	"github.com/jrazmi/tasker/infrastructure/postgresdb"
	"github.com/jrazmi/tasker/sdk/environment"
	"github.com/jrazmi/tasker/sdk/logger"
)

var build = "develop"
var appName = "TASKER"

func processCommands(ctx context.Context, log *logger.Logger, command string) error {
	switch command {
	case "migrate":
		pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithTracer(postgresdb.NewLoggingQueryTracer(log.Logger)))
		if err != nil {
			return fmt.Errorf("configuring postgres support: %w", err)
		}
		defer func() {
			log.InfoContext(ctx, "shutdown", "status", "closing database connection")
			pg.Close()
		}()

		return commands.Migrate(ctx, log, pg)

	case "indexes":
		db, err := mongodb.NewFromEnv(appName, mongodb.WithLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("configuring mongo support: %w", err)
		}
		defer func() {
			log.InfoContext(ctx, "shutdown", "status", "closing database connection")
			mongodb.Close(context.Background(), db)
		}()

		return commands.Indexes(ctx, log, db)

	default:
		printHelp()
		return nil
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  migrate - apply the postgres migrations")
	fmt.Println("  indexes - create the mongo indexes")
	fmt.Println()
	fmt.Println("Use 'go run app/tooling/main.go <command>'.")
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var command string
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if command == "" || command == "help" || command == "--help" || command == "-h" {
		printHelp()
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- processCommands(ctx, log, command)
	}()

	select {
	case err := <-done:
		return err

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		cancel()

		// Give a short time for commands to complete
		timer := time.NewTimer(5 * time.Second)
		defer timer.Stop()

		select {
		case err := <-done:
			return err
		case <-timer.C:
			return fmt.Errorf("shutdown timeout after signal %s", sig)
		}
	}
}

func main() {
	environment.LoadEnv()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := context.Background()

	if err = run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}
