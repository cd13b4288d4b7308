package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profile_snapshots (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	username    TEXT    NOT NULL,
	user_id     INTEGER,
	payload     TEXT    NOT NULL,
	fetched_at  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profile_snapshots_username
	ON profile_snapshots(username, fetched_at);
`

const memoryDSN = ":memory:"

// SQLiteService owns the local snapshot database.
type SQLiteService struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// NewSQLiteService opens (or creates) the database at path and applies the schema.
// ":memory:" is accepted for tests.
func NewSQLiteService(ctx context.Context, path string, logger *zap.Logger) (*SQLiteService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dsn := memoryDSN
	if path != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// one connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Debug("SQLite snapshot store opened", zap.String("path", path))

	return &SQLiteService{
		db:     db,
		path:   path,
		logger: logger,
	}, nil
}

func (s *SQLiteService) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
