// Package store is the durable client-side storage for session data: an
// sqlite-backed key/value table holding the persisted credential and the
// cached identity snapshot between process runs.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/apotekhub/storefront/internal/store/migrations"
)

// Repository is the key/value contract the session store depends on.
// Get returns (nil, nil) for a missing key. SetAll writes all pairs in a
// single transaction; Clear removes every key in one statement, so values
// that must live and die together (credential + identity snapshot) never
// survive each other.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Open opens (creating if needed) the local sqlite database and applies
// the embedded migrations. The caller owns the returned handle.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return db, nil
}
