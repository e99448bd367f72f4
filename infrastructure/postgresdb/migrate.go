package postgresdb

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/tasker/schema"
	"github.com/jrazmi/tasker/sdk/logger"
)

// Migrate applies pending migrations from schema/pgmigrations in file name
// order. Applied versions are recorded with a checksum in schema_migrations
// and a changed file fails the run. Migrations are forward only.
func Migrate(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	if err := StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	log.InfoContext(ctx, "migrate", "status", "running database migrations")

	if err := runMigrations(ctx, log, pool, schema.MigrationsFS, "pgmigrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.InfoContext(ctx, "migrate", "status", "migrations complete")
	return nil
}

func runMigrations(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool, fsys fs.FS, dir string) error {
	if err := createMigrationsTable(ctx, pool); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	files, err := migrationFiles(fsys, dir)
	if err != nil {
		return fmt.Errorf("get migration files: %w", err)
	}

	for _, file := range files {
		if err := applyMigration(ctx, log, pool, fsys, path.Join(dir, file)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}

func createMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := pool.Exec(ctx, query)
	return err
}

// migrationFiles returns the sorted .sql file names in dir.
func migrationFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

func checksum(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

func applyMigration(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool, fsys fs.FS, filePath string) error {
	version := path.Base(filePath)

	content, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	sum := checksum(content)

	var existing string
	err = pool.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", version).Scan(&existing)
	switch {
	case err == nil:
		if existing != sum {
			return fmt.Errorf("checksum mismatch: migration %s was modified after being applied (expected %s, got %s)",
				version, existing, sum)
		}
		log.InfoContext(ctx, "migrate", "version", version, "status", "already applied")
		return nil
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("lookup migration: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)", version, sum); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.InfoContext(ctx, "migrate", "version", version, "status", "applied", "checksum", sum[:8])
	return nil
}
