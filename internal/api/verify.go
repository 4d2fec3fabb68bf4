package api

import (
	"context"
	"net/http"

	"github.com/alexanderramin/fiszki/internal/domain"
)

// VerifyClient asks the AI verification endpoint to re-judge answers.
type VerifyClient struct {
	c *Client
}

func NewVerifyClient(c *Client) *VerifyClient {
	return &VerifyClient{c: c}
}

type verifyRequest struct {
	TaskType       domain.TaskType `json:"task_type"`
	ItemID         string          `json:"item_id"`
	UserAnswer     string          `json:"user_answer"`
	Question       string          `json:"question"`
	ExpectedAnswer string          `json:"expected_answer"`
}

type verifyResponse struct {
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
	AnswerAdded bool   `json:"answer_added"`
}

func (v *VerifyClient) Verify(ctx context.Context, req domain.VerifyRequest) (domain.Verification, error) {
	body := verifyRequest{
		TaskType:       req.TaskType,
		ItemID:         req.ItemID,
		UserAnswer:     req.UserAnswer,
		Question:       req.Question,
		ExpectedAnswer: req.ExpectedAnswer,
	}
	var resp verifyResponse
	if err := v.c.do(ctx, CallVerify, http.MethodPost, "/api/ai/verify-answer", body, &resp); err != nil {
		return domain.Verification{}, err
	}
	return domain.Verification{IsCorrect: resp.IsCorrect, Explanation: resp.Explanation, AnswerAdded: resp.AnswerAdded}, nil
}
