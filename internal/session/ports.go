package session

import (
	"context"

	"github.com/alexanderramin/fiszki/internal/domain"
)

// ItemSource is the progress collaborator for one exercise mode.
type ItemSource[T any] interface {
	ListGroups(ctx context.Context) ([]domain.StudyGroup, error)
	// StartSession returns the items of a new session. The order is
	// authoritative and is never changed by the controller.
	StartSession(ctx context.Context, groupIDs []string, includeLearned bool, limit int) ([]T, error)
	ReportProgress(ctx context.Context, itemID string, learned bool) error
}

// Scorer is the remote scoring authority.
type Scorer interface {
	SubmitScore(ctx context.Context, req domain.ScoreRequest) (domain.ScoreResult, error)
}

// Puzzle is a started word-guess game. Target is opaque to the controller
// and only handed back to Check.
type Puzzle struct {
	Target string
	Length int
}

// MiniGame checks word-guess rows remotely. Sequencing is local.
type MiniGame interface {
	Start(ctx context.Context, level string) (Puzzle, error)
	Check(ctx context.Context, target, guess string) ([]domain.Verdict, error)
}

// Verifier re-judges a wrong answer with the AI verification service.
type Verifier interface {
	Verify(ctx context.Context, req domain.VerifyRequest) (domain.Verification, error)
}
