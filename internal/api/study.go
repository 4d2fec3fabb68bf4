package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/fiszki/internal/domain"
)

// StudyClient serves the study endpoints of one mode. T is the item shape
// the mode's session endpoint returns.
type StudyClient[T any] struct {
	c    *Client
	mode domain.ExerciseMode
}

func NewStudyClient[T any](c *Client, mode domain.ExerciseMode) *StudyClient[T] {
	return &StudyClient[T]{c: c, mode: mode}
}

type groupDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Language     string `json:"language"`
	TotalItems   int    `json:"total_items"`
	LearnedItems int    `json:"learned_items"`
	UpdatedAt    string `json:"updated_at"`
}

type sessionRequest struct {
	GroupIDs       []string `json:"group_ids"`
	IncludeLearned bool     `json:"include_learned"`
	Limit          int      `json:"limit"`
}

type progressRequest struct {
	ItemID  string `json:"item_id"`
	Learned bool   `json:"learned"`
}

func (s *StudyClient[T]) path(endpoint string) string {
	return fmt.Sprintf("/study/%s/%s", s.mode, endpoint)
}

func (s *StudyClient[T]) ListGroups(ctx context.Context) ([]domain.StudyGroup, error) {
	var dtos []groupDTO
	if err := s.c.do(ctx, CallGroups, http.MethodGet, s.path("groups"), nil, &dtos); err != nil {
		return nil, err
	}
	groups := make([]domain.StudyGroup, len(dtos))
	for i, d := range dtos {
		groups[i] = domain.StudyGroup{
			ID:           d.ID,
			Name:         d.Name,
			Description:  d.Description,
			Language:     d.Language,
			TotalItems:   d.TotalItems,
			LearnedItems: d.LearnedItems,
			UpdatedAt:    parseTimestamp(d.UpdatedAt),
		}
	}
	return groups, nil
}

func (s *StudyClient[T]) StartSession(ctx context.Context, groupIDs []string, includeLearned bool, limit int) ([]T, error) {
	if groupIDs == nil {
		groupIDs = []string{}
	}
	var items []T
	req := sessionRequest{GroupIDs: groupIDs, IncludeLearned: includeLearned, Limit: limit}
	if err := s.c.do(ctx, CallSession, http.MethodPost, s.path("session"), req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *StudyClient[T]) ReportProgress(ctx context.Context, itemID string, learned bool) error {
	return s.c.do(ctx, CallProgress, http.MethodPost, s.path("progress"), progressRequest{ItemID: itemID, Learned: learned}, nil)
}

// timestampLayouts covers RFC 3339 and the zone-less ISO form the backend
// emits for naive datetimes.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
