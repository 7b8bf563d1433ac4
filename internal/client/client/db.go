// Package client bootstraps the local SQLite database backing the
// session store.
package client

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"hacksnooze/internal/client/migrations"
	"hacksnooze/internal/client/repositories/credentials"
)

type Repositories struct {
	Credentials credentials.Repository
	DB          *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		Credentials: credentials.NewSQLiteRepository(db),
		DB:          db,
	}, nil
}
