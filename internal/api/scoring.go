package api

import (
	"context"
	"net/http"

	"github.com/alexanderramin/fiszki/internal/domain"
)

// ScoreClient submits answer outcomes to the gamification endpoint.
type ScoreClient struct {
	c *Client
}

func NewScoreClient(c *Client) *ScoreClient {
	return &ScoreClient{c: c}
}

type scoreRequest struct {
	IsCorrect bool   `json:"is_correct"`
	IsKnown   bool   `json:"is_known"`
	Level     string `json:"level"`
	ItemID    string `json:"item_id,omitempty"`
}

type scoreResponse struct {
	PointsDelta     int     `json:"points_delta"`
	NewTotalPoints  int     `json:"new_total_points"`
	NewCombo        int     `json:"new_combo"`
	Multiplier      float64 `json:"multiplier"`
	TriggerMiniGame bool    `json:"trigger_mini_game"`
	Message         *string `json:"message"`
}

func (s *ScoreClient) SubmitScore(ctx context.Context, req domain.ScoreRequest) (domain.ScoreResult, error) {
	body := scoreRequest{IsCorrect: req.IsCorrect, IsKnown: req.IsKnown, Level: req.Level, ItemID: req.ItemID}
	var resp scoreResponse
	if err := s.c.do(ctx, CallScore, http.MethodPost, "/api/gamification/score", body, &resp); err != nil {
		return domain.ScoreResult{}, err
	}
	res := domain.ScoreResult{
		PointsDelta:     resp.PointsDelta,
		NewTotalPoints:  resp.NewTotalPoints,
		NewCombo:        resp.NewCombo,
		Multiplier:      resp.Multiplier,
		TriggerMiniGame: resp.TriggerMiniGame,
	}
	if resp.Message != nil {
		res.Message = *resp.Message
	}
	return res, nil
}
