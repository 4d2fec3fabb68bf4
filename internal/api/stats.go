package api

import (
	"context"
	"math"
	"net/http"

	"github.com/alexanderramin/fiszki/internal/domain"
)

// StatsClient reads the learner's account statistics.
type StatsClient struct {
	c *Client
}

func NewStatsClient(c *Client) *StatsClient {
	return &StatsClient{c: c}
}

type profileStatsResponse struct {
	TotalPoints   int `json:"total_points"`
	HighestCombo  int `json:"highest_combo"`
	CurrentStreak int `json:"current_streak"`
}

type modeStatsDTO struct {
	Total   int `json:"total"`
	Learned int `json:"learned"`
}

type dashboardResponse struct {
	TotalPoints   int          `json:"total_points"`
	HighestCombo  int          `json:"highest_combo"`
	CurrentStreak int          `json:"current_streak"`
	Fiszki        modeStatsDTO `json:"fiszki"`
	TranslatePlFr modeStatsDTO `json:"translate_pl_fr"`
	TranslateFrPl modeStatsDTO `json:"translate_fr_pl"`
	GuessObject   modeStatsDTO `json:"guess_object"`
	FillBlank     modeStatsDTO `json:"fill_blank"`
	TotalLearned  int          `json:"total_learned"`
	TotalItems    int          `json:"total_items"`
	Level         string       `json:"level"`
	LevelProgress float64      `json:"level_progress"`
}

// Profile returns the account-wide points and combo counters.
func (s *StatsClient) Profile(ctx context.Context) (domain.UserStats, error) {
	var resp profileStatsResponse
	if err := s.c.do(ctx, CallProfileStats, http.MethodGet, "/user/profile/stats", nil, &resp); err != nil {
		return domain.UserStats{}, err
	}
	return domain.UserStats{
		TotalPoints:   resp.TotalPoints,
		HighestCombo:  resp.HighestCombo,
		CurrentStreak: resp.CurrentStreak,
	}, nil
}

// Dashboard returns the full statistics snapshot used for badges.
func (s *StatsClient) Dashboard(ctx context.Context) (domain.UserStats, error) {
	var resp dashboardResponse
	if err := s.c.do(ctx, CallDashboard, http.MethodGet, "/user/dashboard/stats", nil, &resp); err != nil {
		return domain.UserStats{}, err
	}
	return domain.UserStats{
		TotalPoints:   resp.TotalPoints,
		HighestCombo:  resp.HighestCombo,
		CurrentStreak: resp.CurrentStreak,
		TotalLearned:  resp.TotalLearned,
		TotalItems:    resp.TotalItems,
		Modes: map[domain.ExerciseMode]domain.ModeCount{
			domain.ModeFlashcards:      resp.Fiszki.count(),
			domain.ModeTranslatePlToFr: resp.TranslatePlFr.count(),
			domain.ModeTranslateFrToPl: resp.TranslateFrPl.count(),
			domain.ModeGuessObject:     resp.GuessObject.count(),
			domain.ModeFillBlank:       resp.FillBlank.count(),
		},
		Level:         resp.Level,
		LevelProgress: int(math.Round(resp.LevelProgress)),
	}, nil
}

func (m modeStatsDTO) count() domain.ModeCount {
	return domain.ModeCount{Total: m.Total, Learned: m.Learned}
}
