package cards

import (
	"context"
	"fmt"
	"strings"

	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/dbx"
)

// SQLiteRepository stores cards in SQLite, ordered by insertion.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository constructs a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, card *models.Card) error {
	query := `INSERT INTO cards (id, date_label, mood, location, temperature, photo, pending)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, card.ID, card.Date, card.Mood, card.Location, card.Temperature, card.Photo, card.Pending)
	if err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, where string) ([]models.Card, error) {
	query := `SELECT id, date_label, mood, location, temperature, photo, pending FROM cards ` + where + ` ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select cards: %w", err)
	}
	defer rows.Close()

	result := make([]models.Card, 0)
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.Date, &c.Mood, &c.Location, &c.Temperature, &c.Photo, &c.Pending); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Card, error) {
	return r.query(ctx, "")
}

func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]models.Card, error) {
	return r.query(ctx, "WHERE pending = 1")
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE cards SET pending = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark card %s synced: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceSynced(ctx context.Context, cards []models.Card) error {
	keep := make([]string, 0, len(cards))
	args := make([]any, 0, len(cards))
	for _, c := range cards {
		keep = append(keep, "?")
		args = append(args, c.ID)
	}

	drop := `DELETE FROM cards WHERE pending = 0`
	if len(keep) > 0 {
		drop += ` AND id NOT IN (` + strings.Join(keep, ", ") + `)`
	}
	if _, err := r.db.ExecContext(ctx, drop, args...); err != nil {
		return fmt.Errorf("failed to drop synced cards: %w", err)
	}

	// Rows that already exist keep their seq so the listing order does not
	// change; only cards new to this device are appended.
	upsert := `INSERT INTO cards (id, date_label, mood, location, temperature, photo, pending)
		VALUES (?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			date_label = excluded.date_label,
			mood = excluded.mood,
			location = excluded.location,
			temperature = excluded.temperature,
			photo = excluded.photo,
			pending = 0`
	for _, c := range cards {
		if _, err := r.db.ExecContext(ctx, upsert, c.ID, c.Date, c.Mood, c.Location, c.Temperature, c.Photo); err != nil {
			return fmt.Errorf("failed to upsert card %s: %w", c.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("failed to clear cards: %w", err)
	}
	return nil
}
