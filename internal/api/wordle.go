package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/session"
)

// WordleClient starts and checks word-guess mini-games.
type WordleClient struct {
	c *Client
}

func NewWordleClient(c *Client) *WordleClient {
	return &WordleClient{c: c}
}

type wordleStartResponse struct {
	TargetWord string `json:"target_word"`
	Language   string `json:"language"`
}

type wordleCheckRequest struct {
	TargetWord string `json:"target_word"`
	Guess      string `json:"guess"`
}

type wordleCheckResponse struct {
	Result []domain.Verdict `json:"result"`
}

func (w *WordleClient) Start(ctx context.Context, level string) (session.Puzzle, error) {
	path := "/minigame/wordle/start"
	if level != "" {
		path += "?level=" + url.QueryEscape(level)
	}
	var resp wordleStartResponse
	if err := w.c.do(ctx, CallWordleStart, http.MethodPost, path, nil, &resp); err != nil {
		return session.Puzzle{}, err
	}
	if resp.TargetWord == "" {
		return session.Puzzle{}, fmt.Errorf("%w: empty target word", ErrInvalidResponse)
	}
	return session.Puzzle{Target: resp.TargetWord, Length: utf8.RuneCountInString(resp.TargetWord)}, nil
}

func (w *WordleClient) Check(ctx context.Context, target, guess string) ([]domain.Verdict, error) {
	var resp wordleCheckResponse
	req := wordleCheckRequest{TargetWord: target, Guess: guess}
	if err := w.c.do(ctx, CallWordleCheck, http.MethodPost, "/minigame/wordle/check", req, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}
