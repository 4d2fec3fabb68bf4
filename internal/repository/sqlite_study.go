package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/fiszki/internal/db"
	"github.com/alexanderramin/fiszki/internal/domain"
)

// SQLiteStudyRepo serves one mode's decks from the offline store. T is the
// mode's raw item shape; payloads are stored as its JSON encoding.
type SQLiteStudyRepo[T any] struct {
	db   db.DBTX
	mode domain.ExerciseMode
}

func NewSQLiteStudyRepo[T any](conn db.DBTX, mode domain.ExerciseMode) *SQLiteStudyRepo[T] {
	return &SQLiteStudyRepo[T]{db: conn, mode: mode}
}

func (r *SQLiteStudyRepo[T]) ListGroups(ctx context.Context) ([]domain.StudyGroup, error) {
	query := `SELECT g.id, g.name, g.description, g.language, g.updated_at,
			COUNT(i.id), COALESCE(SUM(p.learned), 0)
		FROM study_groups g
		LEFT JOIN study_items i ON i.group_id = g.id
		LEFT JOIN item_progress p ON p.item_id = i.id
		WHERE g.mode = ?
		GROUP BY g.id
		ORDER BY g.name, g.id`
	rows, err := r.db.QueryContext(ctx, query, string(r.mode))
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.StudyGroup
	for rows.Next() {
		var g domain.StudyGroup
		var updated string
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Language, &updated, &g.TotalItems, &g.LearnedItems); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		g.UpdatedAt = parseTime(updated)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}
	return groups, nil
}

// StartSession draws up to limit items from the given groups in random order.
// Learned items are left out unless includeLearned is set. A limit <= 0
// returns every candidate. No group ids means no items.
func (r *SQLiteStudyRepo[T]) StartSession(ctx context.Context, groupIDs []string, includeLearned bool, limit int) ([]T, error) {
	if len(groupIDs) == 0 {
		return []T{}, nil
	}
	if limit <= 0 {
		limit = -1
	}

	query := fmt.Sprintf(`SELECT json_set(i.payload,
			'$.id', i.id,
			'$.learned', json(CASE WHEN COALESCE(p.learned, 0) = 1 THEN 'true' ELSE 'false' END))
		FROM study_items i
		JOIN study_groups g ON g.id = i.group_id
		LEFT JOIN item_progress p ON p.item_id = i.id
		WHERE g.mode = ? AND i.group_id IN (%s) AND (? OR COALESCE(p.learned, 0) = 0)
		ORDER BY RANDOM()
		LIMIT ?`, placeholders(len(groupIDs)))

	args := make([]any, 0, len(groupIDs)+3)
	args = append(args, string(r.mode))
	for _, id := range groupIDs {
		args = append(args, id)
	}
	args = append(args, boolToInt(includeLearned), limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting session items: %w", err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		var item T
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("decoding item payload: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// ReportProgress records the learned state of an item in this mode.
func (r *SQLiteStudyRepo[T]) ReportProgress(ctx context.Context, itemID string, learned bool) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM study_items i
		JOIN study_groups g ON g.id = i.group_id
		WHERE i.id = ? AND g.mode = ?`, itemID, string(r.mode)).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("study item %s: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up study item: %w", err)
	}

	query := `INSERT INTO item_progress (item_id, learned, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET learned = excluded.learned, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, itemID, boolToInt(learned), nowUTC()); err != nil {
		return fmt.Errorf("upserting progress: %w", err)
	}
	return nil
}
