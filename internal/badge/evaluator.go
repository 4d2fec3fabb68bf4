package badge

import (
	"sort"

	"github.com/alexanderramin/fiszki/internal/domain"
)

// DefaultUpcomingLimit is how many near-miss badges the dashboard shows.
const DefaultUpcomingLimit = 3

// maxUpcomingPercent keeps an unearned badge from reading as complete.
const maxUpcomingPercent = 99.0

// Progress pairs an unearned badge with its completion percentage.
type Progress struct {
	Badge   Definition
	Percent float64
	Current int
}

// Earned returns the badges whose predicate holds, in catalog order.
func Earned(s domain.UserStats) []Definition {
	var out []Definition
	for _, d := range catalog {
		if d.Satisfied(s) {
			out = append(out, d)
		}
	}
	return out
}

// Upcoming ranks unearned badges by completion, highest first, and returns at
// most limit of them. Ties keep catalog order. A non-positive limit returns
// every unearned badge.
func Upcoming(s domain.UserStats, limit int) []Progress {
	var out []Progress
	for _, d := range catalog {
		if d.Satisfied(s) {
			continue
		}
		cur := d.Current(s)
		out = append(out, Progress{Badge: d, Percent: percent(cur, d.Requirement), Current: cur})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percent > out[j].Percent
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func percent(current, requirement int) float64 {
	if requirement <= 0 || current <= 0 {
		return 0
	}
	return min(100*float64(current)/float64(requirement), maxUpcomingPercent)
}
