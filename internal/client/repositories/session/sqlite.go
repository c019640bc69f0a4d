package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sabastianrafa/powergym-ag-system/internal/dbx"
)

// SQLiteStore keeps credentials in the sessions table, one row per scope.
type SQLiteStore struct {
	db        *sql.DB
	scope     string
	retention time.Duration
	now       func() time.Time
}

// NewSQLiteStore binds a store to scope. A retention of zero keeps
// credentials until they are cleared explicitly.
func NewSQLiteStore(db *sql.DB, scope string, retention time.Duration) *SQLiteStore {
	return &SQLiteStore{db: db, scope: scope, retention: retention, now: time.Now}
}

func (s *SQLiteStore) cutoff() int64 {
	if s.retention <= 0 {
		return 0
	}
	return s.now().Add(-s.retention).Unix()
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	var (
		token     string
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT token, updated_at FROM sessions WHERE scope = ?`, s.scope,
	).Scan(&token, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session[%s]: %w", s.scope, err)
	}

	if updatedAt < s.cutoff() {
		if err := s.Clear(ctx); err != nil {
			return "", err
		}
		return "", nil
	}
	return token, nil
}

// Save upserts the scope's token and prunes credentials of other scopes
// that fell out of the retention window, in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	now := s.now().Unix()
	cutoff := s.cutoff()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (scope, token, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(scope) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
		`, s.scope, token, now); err != nil {
			return err
		}
		if cutoff > 0 {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM sessions WHERE scope <> ? AND updated_at < ?`, s.scope, cutoff,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session[%s]: %w", s.scope, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE scope = ?`, s.scope); err != nil {
		return fmt.Errorf("failed to clear session[%s]: %w", s.scope, err)
	}
	return nil
}
