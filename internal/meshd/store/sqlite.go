package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore persists encoded meshes across restarts.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewSQLiteStore(path string, logger *zap.SugaredLogger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.runMigrations(); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	logger.Infow("sqlite mesh store initialized", "path", path)
	return s, nil
}

func (s *SQLiteStore) runMigrations() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(s.db, "migrations")
}

var _ MeshStore = (*SQLiteStore)(nil)

func (s *SQLiteStore) Get(ctx context.Context, k MeshKey) ([]byte, bool, error) {
	query := `SELECT payload
	FROM mesh_cache
	WHERE tile_level = ? AND tile_row = ? AND tile_column = ? AND skirted = ?`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, k.Level, k.Row, k.Column, k.Skirted).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		s.logger.Errorw("sqlite mesh get failed", "key", k, "error", err)
		return nil, false, err
	}
	return payload, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, k MeshKey, payload []byte) error {
	query := `INSERT INTO mesh_cache (tile_level, tile_row, tile_column, skirted, payload)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (tile_level, tile_row, tile_column, skirted) DO UPDATE SET payload = excluded.payload`

	if _, err := s.db.ExecContext(ctx, query, k.Level, k.Row, k.Column, k.Skirted, payload); err != nil {
		s.logger.Errorw("sqlite mesh set failed", "key", k, "error", err)
		return err
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
