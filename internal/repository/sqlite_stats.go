package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fiszki/internal/db"
	"github.com/alexanderramin/fiszki/internal/domain"
)

// SQLiteStatsRepo aggregates offline learned counts. Points and combos are not
// kept offline and stay zero.
type SQLiteStatsRepo struct {
	db db.DBTX
}

func NewSQLiteStatsRepo(conn db.DBTX) *SQLiteStatsRepo {
	return &SQLiteStatsRepo{db: conn}
}

func (r *SQLiteStatsRepo) Dashboard(ctx context.Context) (domain.UserStats, error) {
	query := `SELECT g.mode, COUNT(i.id), COALESCE(SUM(p.learned), 0)
		FROM study_items i
		JOIN study_groups g ON g.id = i.group_id
		LEFT JOIN item_progress p ON p.item_id = i.id
		GROUP BY g.mode`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("aggregating progress: %w", err)
	}
	defer rows.Close()

	stats := domain.UserStats{Modes: make(map[domain.ExerciseMode]domain.ModeCount, len(domain.AllModes))}
	for _, m := range domain.AllModes {
		stats.Modes[m] = domain.ModeCount{}
	}
	for rows.Next() {
		var mode string
		var c domain.ModeCount
		if err := rows.Scan(&mode, &c.Total, &c.Learned); err != nil {
			return domain.UserStats{}, fmt.Errorf("scanning mode counts: %w", err)
		}
		stats.Modes[domain.ExerciseMode(mode)] = c
		stats.TotalItems += c.Total
		stats.TotalLearned += c.Learned
	}
	if err := rows.Err(); err != nil {
		return domain.UserStats{}, fmt.Errorf("iterating mode counts: %w", err)
	}
	return stats, nil
}
