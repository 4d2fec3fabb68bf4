package domain

import (
	"fmt"
	"math"
	"time"
)

// SessionStats counts terminal outcomes of visited items.
type SessionStats struct {
	Correct   int
	Wrong     int
	Skipped   int
	StartTime time.Time
	EndTime   *time.Time
}

// Visited is the number of items that reached a terminal outcome.
func (s SessionStats) Visited() int {
	return s.Correct + s.Wrong + s.Skipped
}

// PointsBreakdown decomposes the signed session total for display.
type PointsBreakdown struct {
	Gained        int
	Lost          int
	MiniGameBonus int
	AICorrected   int
}

// Net is the session total implied by the breakdown.
func (b PointsBreakdown) Net() int {
	return b.Gained - b.Lost + b.MiniGameBonus + b.AICorrected
}

// ScoreRequest is one scoring call for a terminal item outcome.
type ScoreRequest struct {
	ItemID    string
	IsCorrect bool
	IsKnown   bool
	Level     string
}

// ScoreResult is the scoring authority's reply. Values are opaque to the client.
type ScoreResult struct {
	PointsDelta     int
	NewTotalPoints  int
	NewCombo        int
	Multiplier      float64
	TriggerMiniGame bool
	Message         string
}

// VerifyRequest asks the AI verifier to re-judge a wrong answer.
type VerifyRequest struct {
	TaskType       TaskType
	ItemID         string
	UserAnswer     string
	Question       string
	ExpectedAnswer string
}

type Verification struct {
	IsCorrect   bool
	Explanation string
	AnswerAdded bool
}

// ModeCount is a learned/total pair for one mode.
type ModeCount struct {
	Total   int
	Learned int
}

// UserStats is the read-only snapshot consumed by the badge evaluator.
type UserStats struct {
	TotalPoints   int
	HighestCombo  int
	CurrentStreak int
	TotalLearned  int
	TotalItems    int
	Modes         map[ExerciseMode]ModeCount
	Level         string
	LevelProgress int
}

// Learned returns the learned count for a mode, zero when unknown.
func (s UserStats) Learned(m ExerciseMode) int {
	return s.Modes[m].Learned
}

// Summary is the record produced when a pass reaches its end.
type Summary struct {
	Mode          ExerciseMode
	Correct       int
	Wrong         int
	Skipped       int
	Total         int
	Accuracy      int
	Duration      time.Duration
	SessionPoints int
	Breakdown     PointsBreakdown
	MaxCombo      int
	Mistakes      int
	CanRepeat     bool
}

// AccuracyPercent rounds correct/total to a whole percentage.
func AccuracyPercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// FormatDuration renders d as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
