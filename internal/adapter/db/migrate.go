package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded migrations that are not yet recorded in schema_migrations.
// Files are named like 0001_description.sql and run in lexicographic order, each as one
// statement batch, so the DSN needs multiStatements=true.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
  version BIGINT PRIMARY KEY,
  applied_at DATETIME(6) NOT NULL
) ENGINE=InnoDB`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	var versions []int
	if err := db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	applied := make(map[int]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}

	for _, file := range files {
		name := path.Base(file)
		version, err := migrationVersion(name)
		if err != nil {
			return fmt.Errorf("invalid migration filename %q: %w", name, err)
		}
		if applied[version] {
			zap.L().Debug("migration already applied", zap.Int("version", version), zap.String("file", name))
			continue
		}

		content, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return err
		}
		zap.L().Info("applying migration", zap.Int("version", version), zap.String("file", name))
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("applying %s: %w", name, err)
		}
		if _, err := db.ExecContext(
			ctx,
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			version,
			time.Now().UTC(),
		); err != nil {
			return err
		}
	}
	return nil
}

func migrationVersion(name string) (int, error) {
	prefix, _, found := strings.Cut(name, "_")
	if !found || prefix == "" {
		return 0, fmt.Errorf("missing numeric prefix")
	}
	return strconv.Atoi(prefix)
}
