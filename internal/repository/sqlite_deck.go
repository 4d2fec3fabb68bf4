package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fiszki/internal/db"
	"github.com/alexanderramin/fiszki/internal/domain"
)

// DeckGroup is a group row as written by the importer.
type DeckGroup struct {
	ID          string
	Mode        domain.ExerciseMode
	Name        string
	Description string
	Language    string
}

// DeckItem is an item row; Payload is the raw JSON item shape of its mode.
type DeckItem struct {
	ID      string
	GroupID string
	Order   int
	Payload []byte
}

// SQLiteDeckRepo writes imported decks. Writes are upserts so re-importing a
// deck with stable ids refreshes it in place and keeps learned progress.
type SQLiteDeckRepo struct {
	db db.DBTX
}

func NewSQLiteDeckRepo(conn db.DBTX) *SQLiteDeckRepo {
	return &SQLiteDeckRepo{db: conn}
}

func (r *SQLiteDeckRepo) UpsertGroup(ctx context.Context, g DeckGroup) error {
	lang := g.Language
	if lang == "" {
		lang = "fr"
	}
	now := nowUTC()
	query := `INSERT INTO study_groups (id, mode, name, description, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			language = excluded.language,
			updated_at = excluded.updated_at
		WHERE study_groups.mode = excluded.mode`
	res, err := r.db.ExecContext(ctx, query, g.ID, string(g.Mode), g.Name, g.Description, lang, now, now)
	if err != nil {
		return fmt.Errorf("upserting group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("group %s already exists in another mode", g.ID)
	}
	return nil
}

func (r *SQLiteDeckRepo) UpsertItem(ctx context.Context, it DeckItem) error {
	query := `INSERT INTO study_items (id, group_id, order_index, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			group_id = excluded.group_id,
			order_index = excluded.order_index,
			payload = excluded.payload`
	if _, err := r.db.ExecContext(ctx, query, it.ID, it.GroupID, it.Order, string(it.Payload), nowUTC()); err != nil {
		return fmt.Errorf("upserting item: %w", err)
	}
	return nil
}

// DeleteGroup removes a group with its items and their progress.
func (r *SQLiteDeckRepo) DeleteGroup(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	return nil
}
