// Package sqlite opens the tabletop SQLite store, applies the embedded schema
// and seeds the item and ability catalog.
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/rpg-tabletop/internal/config"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/sqlite/migrations"
)

const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"

// Open connects to the database at cfg.Path, applies migrations and seeds the
// catalog. The connection attempt is bounded by cfg.ConnectTimeout and is not
// retried; any failure to reach the file is Unavailable/CONNECTION_ERROR.
func Open(ctx context.Context, cfg config.StorageConfig) (*sql.DB, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.InvalidArgument("storage path is required")
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = config.DefaultConnectTimeout
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, connectionError(err, cleanPath)
		}
	}

	db, err := sql.Open("sqlite", cleanPath+dsnPragmas)
	if err != nil {
		return nil, connectionError(err, cleanPath)
	}
	// A single writer connection avoids SQLITE_BUSY between our own statements
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, connectionError(err, cleanPath)
	}

	if err := ApplyMigrations(ctx, db, migrations.FS, "."); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to apply migrations").
			WithReason(errors.ReasonStorage)
	}

	if err := SeedCatalog(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Info("Storage ready", "path", cleanPath)
	return db, nil
}

func connectionError(err error, path string) error {
	return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to storage").
		WithReason(errors.ReasonConnection).
		WithMeta("path", path)
}

// LogAction appends a row to system_log. It runs on q so callers can include
// it in an open transaction.
func LogAction(ctx context.Context, q Execer, playerID int64, action, detail string) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO system_log (player_id, action, detail, created_at) VALUES (?, ?, ?, ?)`,
		playerID, action, detail, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to write system log").
			WithReason(errors.ReasonStorage)
	}
	return nil
}

// Execer is satisfied by *sql.DB and *sql.Tx
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
