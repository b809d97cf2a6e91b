package database

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/bookwell/bookwell/config"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/version"
	"go.uber.org/zap"
)

//go:embed migration
var migrationFS embed.FS

const latestSchemaFileName = "LATEST_SCHEMA.sql"

func NewDB() (*sql.DB, error) {
	if config.Opts.DSN == "" {
		return nil, errors.New("Database URL is required")
	}

	db, err := sql.Open("sqlite", config.Opts.DSN)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, errors.Wrap(err, "failed to enable foreign keys")
	}

	return db, nil
}

// Migrate applies the latest schema to a fresh database and records the
// current version in migration_history.
func Migrate(ctx context.Context, db *sql.DB) error {
	currentVersion := version.GetCurrentVersion()

	fresh := false
	if _, err := os.Stat(config.Opts.DSN); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(err, "failed to check database file")
		}
		fresh = true
	}

	if !fresh {
		var count int
		err := db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'migration_history'").Scan(&count)
		if err != nil {
			return errors.Wrap(err, "failed to inspect schema")
		}
		fresh = count == 0
	}

	if fresh {
		if err := ApplyLatestSchema(ctx, db); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if err := upsertMigrationHistory(ctx, db, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		log.Info("Database initialized", zap.String("version", currentVersion))
		return nil
	}

	latest, err := latestMigrationVersion(ctx, db)
	if err != nil {
		return errors.Wrap(err, "failed to read migration history")
	}
	if version.IsVersionGreaterThan(version.GetSchemaVersion(currentVersion), latest) {
		// Schema changes land in LATEST_SCHEMA.sql only for now, there is
		// no released version with a different schema to migrate from.
		if err := upsertMigrationHistory(ctx, db, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
	}
	return nil
}

// ApplyLatestSchema executes the embedded schema file.
func ApplyLatestSchema(ctx context.Context, db *sql.DB) error {
	buf, err := fs.ReadFile(migrationFS, "migration/"+latestSchemaFileName)
	if err != nil {
		return errors.Wrapf(err, "failed to read schema file %s", latestSchemaFileName)
	}
	if _, err := db.ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to execute schema")
	}
	return nil
}

func upsertMigrationHistory(ctx context.Context, db *sql.DB, v string) error {
	stmt := `
		INSERT INTO migration_history (version)
		VALUES (?)
		ON CONFLICT (version) DO UPDATE SET version = EXCLUDED.version
	`
	_, err := db.ExecContext(ctx, stmt, v)
	return err
}

func latestMigrationVersion(ctx context.Context, db *sql.DB) (string, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migration_history")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	versions := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return "", err
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "0.0.0", nil
	}
	version.SortVersionList(versions)
	return versions[len(versions)-1], nil
}
