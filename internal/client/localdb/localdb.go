// Package localdb opens the client's SQLite database and applies its
// migrations.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/couplediaries/couplediaries/internal/client/migrations"
	"github.com/couplediaries/couplediaries/internal/client/repositories/cards"
	"github.com/couplediaries/couplediaries/internal/client/repositories/metadata"
	"github.com/couplediaries/couplediaries/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// DB bundles the database handle with its repositories.
type DB struct {
	SQL      *sql.DB
	Metadata metadata.Repository
	Cards    cards.Repository
}

// CardsTx returns a cards repository bound to tx.
func (d *DB) CardsTx(tx dbx.DBTX) cards.Repository {
	return cards.NewSQLiteRepository(tx)
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// ":memory:" databases live per connection.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local db: %w", err)
	}

	return &DB{
		SQL:      db,
		Metadata: metadata.NewSQLiteRepository(db),
		Cards:    cards.NewSQLiteRepository(db),
	}, nil
}

func (d *DB) Close() error {
	return d.SQL.Close()
}
