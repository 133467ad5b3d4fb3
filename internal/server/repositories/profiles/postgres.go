package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/dbx"
)

// PostgresRepository keeps profile documents in a JSONB column.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func decode(raw []byte) (Document, error) {
	doc := Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	query := `
		INSERT INTO profiles (user_id, data)
		VALUES ($1, $2::jsonb)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, raw); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (Document, error) {
	query := `
		SELECT data
		FROM profiles
		WHERE user_id = $1
	`
	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return decode(raw)
}

func (r *PostgresRepository) Merge(ctx context.Context, userID string, fields Document) (Document, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	query := `
		INSERT INTO profiles (user_id, data)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (user_id) DO UPDATE
		SET data = profiles.data || EXCLUDED.data, updated_at = now()
		RETURNING data
	`
	var merged []byte
	if err := r.db.QueryRowContext(ctx, query, userID, raw).Scan(&merged); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return decode(merged)
}
