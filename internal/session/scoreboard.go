package session

import (
	"sync"

	"github.com/alexanderramin/fiszki/internal/domain"
)

// Scoreboard holds the learner's account-wide totals as last reported by the
// scoring authority. One Scoreboard is shared by every controller of a
// process and outlives individual sessions.
type Scoreboard struct {
	mu           sync.Mutex
	totalPoints  int
	combo        int
	highestCombo int
}

// Totals is a point-in-time copy of a Scoreboard.
type Totals struct {
	TotalPoints  int
	Combo        int
	HighestCombo int
}

func NewScoreboard(totalPoints, highestCombo int) *Scoreboard {
	return &Scoreboard{totalPoints: max(totalPoints, 0), highestCombo: max(highestCombo, 0)}
}

// Apply records a scoring reply. Totals are floored at zero for display.
func (b *Scoreboard) Apply(r domain.ScoreResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.totalPoints = max(r.NewTotalPoints, 0)
	b.combo = max(r.NewCombo, 0)
	b.highestCombo = max(b.highestCombo, b.combo)
}

func (b *Scoreboard) AddBonus(points int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.totalPoints = max(b.totalPoints+points, 0)
}

func (b *Scoreboard) Totals() Totals {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Totals{TotalPoints: b.totalPoints, Combo: b.combo, HighestCombo: b.highestCombo}
}
