package cli

import (
	"context"
	"sync"

	"github.com/alexanderramin/fiszki/internal/domain"
	"golang.org/x/sync/errgroup"
)

// maxDashboardCalls bounds the concurrent collaborator calls of one
// dashboard load.
const maxDashboardCalls = 4

// dashboard is everything the statistics screen shows.
type dashboard struct {
	Stats  domain.UserStats
	Groups map[domain.ExerciseMode][]domain.StudyGroup
}

// GroupCounts is the number of groups listed per mode.
func (d dashboard) GroupCounts() map[domain.ExerciseMode]int {
	out := make(map[domain.ExerciseMode]int, len(d.Groups))
	for m, gs := range d.Groups {
		out[m] = len(gs)
	}
	return out
}

// loadDashboard fetches the statistics snapshot and every mode's group list
// concurrently. A failing group list only drops that mode's count; a failing
// statistics call fails the load. Without a stats source the snapshot is
// derived from the group lists.
func loadDashboard(ctx context.Context, app *App) (dashboard, error) {
	var (
		mu     sync.Mutex
		d      = dashboard{Groups: make(map[domain.ExerciseMode][]domain.StudyGroup)}
		stats  domain.UserStats
		remote = app.Stats != nil
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDashboardCalls)
	if remote {
		g.Go(func() error {
			s, err := app.Stats.Dashboard(ctx)
			if err != nil {
				return err
			}
			stats = s
			return nil
		})
	}
	for _, sm := range app.studyModes() {
		g.Go(func() error {
			groups, err := sm.Groups(ctx)
			if err != nil {
				app.logger().Warn("dashboard group list failed", "mode", sm.Mode(), "error", err)
				return nil
			}
			mu.Lock()
			d.Groups[sm.Mode()] = groups
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dashboard{}, err
	}

	if !remote {
		stats = statsFromGroups(d.Groups, app.board().Totals().TotalPoints, app.board().Totals().HighestCombo)
	}
	d.Stats = stats
	return d, nil
}

func statsFromGroups(groups map[domain.ExerciseMode][]domain.StudyGroup, points, highestCombo int) domain.UserStats {
	s := domain.UserStats{
		TotalPoints:  points,
		HighestCombo: highestCombo,
		Modes:        make(map[domain.ExerciseMode]domain.ModeCount, len(domain.AllModes)),
	}
	for _, m := range domain.AllModes {
		var c domain.ModeCount
		for _, g := range groups[m] {
			c.Total += g.TotalItems
			c.Learned += g.LearnedItems
		}
		s.Modes[m] = c
		s.TotalItems += c.Total
		s.TotalLearned += c.Learned
	}
	return s
}
