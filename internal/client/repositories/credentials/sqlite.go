package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	keyToken    = "token"
	keyUsername = "username"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*Session, error) {
	token, err := r.get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	username, err := r.get(ctx, keyUsername)
	if err != nil {
		return nil, err
	}
	// an incomplete pair is as good as no session
	if token == "" || username == "" {
		return nil, nil
	}
	return &Session{Token: token, Username: username}, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, s Session) error {
	if err := r.set(ctx, keyToken, s.Token); err != nil {
		return err
	}
	return r.set(ctx, keyUsername, s.Username)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}
