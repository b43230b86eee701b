package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/boothill/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/boothill/internal/services/game/storage"
	"github.com/louisbranch/boothill/internal/services/game/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis reverses toMillis for persisted millisecond timestamps.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store is a SQLite-backed storage.SaveStore.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.SaveStore = (*Store)(nil)

// Open opens the save store at path and applies pending migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSave inserts or replaces a save.
func (s *Store) PutSave(ctx context.Context, save storage.Save) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := save.Validate(); err != nil {
		return err
	}
	if save.CreatedAt.IsZero() {
		save.CreatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO saves (id, session_id, name, state_json, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	session_id = excluded.session_id,
	name = excluded.name,
	state_json = excluded.state_json,
	created_at = excluded.created_at`,
		save.ID, save.SessionID, save.Name, save.StateJSON, toMillis(save.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put save %s: %w", save.ID, err)
	}
	return nil
}

// GetSave loads a save by id.
func (s *Store) GetSave(ctx context.Context, id string) (storage.Save, error) {
	if err := ctx.Err(); err != nil {
		return storage.Save{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Save{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Save{}, fmt.Errorf("save id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, session_id, name, state_json, created_at FROM saves WHERE id = ?`, id)
	save, err := scanSave(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Save{}, storage.ErrNotFound
		}
		return storage.Save{}, fmt.Errorf("get save %s: %w", id, err)
	}
	return save, nil
}

// ListSaves returns saves newest first, optionally scoped to one session.
func (s *Store) ListSaves(ctx context.Context, sessionID string, limit int) ([]storage.Save, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, session_id, name, state_json, created_at FROM saves
WHERE ? = '' OR session_id = ?
ORDER BY created_at DESC, id ASC
LIMIT ?`, sessionID, sessionID, storage.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	saves := make([]storage.Save, 0)
	for rows.Next() {
		save, err := scanSave(rows)
		if err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		saves = append(saves, save)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return saves, nil
}

// DeleteSave removes a save by id.
func (s *Store) DeleteSave(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete save %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete save %s: %w", id, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSave(row rowScanner) (storage.Save, error) {
	var (
		save      storage.Save
		createdAt int64
	)
	if err := row.Scan(&save.ID, &save.SessionID, &save.Name, &save.StateJSON, &createdAt); err != nil {
		return storage.Save{}, err
	}
	save.CreatedAt = fromMillis(createdAt)
	return save, nil
}
