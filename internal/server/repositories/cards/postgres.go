package cards

import (
	"context"
	"fmt"

	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/dbx"
	"github.com/couplediaries/couplediaries/internal/server/models"
)

// PostgresRepository stores cards in Postgres.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	query := `
		INSERT INTO cards (id, user_id, date_label, mood, location, temperature, photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		card.ID, card.UserID, card.Date, card.Mood, card.Location, card.Temperature, card.Photo,
	).Scan(&card.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return card, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Card, error) {
	query := `
		SELECT id, user_id, date_label, mood, location, temperature, photo, created_at
		FROM cards
		WHERE user_id = $1
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Card
	for rows.Next() {
		c := &models.Card{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Date, &c.Mood, &c.Location, &c.Temperature, &c.Photo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
