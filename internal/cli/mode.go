package cli

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/session"
)

// studyMode erases the item type of one exercise mode so commands and the
// mode menu can treat every mode alike.
type studyMode interface {
	Mode() domain.ExerciseMode
	Groups(ctx context.Context) ([]domain.StudyGroup, error)
	AIAvailable() bool
	newStudyView(state *SharedState, preset *groupPreset) View
}

// groupPreset starts a study view with a fixed selection instead of the
// group picker.
type groupPreset struct {
	groupIDs       []string
	includeLearned bool
}

type modeBinding[T any] struct {
	app     *App
	adapter session.Adapter[T]
	source  session.ItemSource[T]
}

func bind[T any](app *App, a session.Adapter[T], src session.ItemSource[T]) modeBinding[T] {
	return modeBinding[T]{app: app, adapter: a, source: src}
}

func (b modeBinding[T]) Mode() domain.ExerciseMode { return b.adapter.Mode }

func (b modeBinding[T]) Groups(ctx context.Context) ([]domain.StudyGroup, error) {
	return b.source.ListGroups(ctx)
}

func (b modeBinding[T]) AIAvailable() bool {
	return b.app.Verifier != nil && b.adapter.TaskType != domain.TaskNone
}

func (b modeBinding[T]) newController() *session.Controller[T] {
	return session.NewController(b.adapter, session.Deps[T]{
		Items:    b.source,
		Scorer:   b.app.Scorer,
		MiniGame: b.app.MiniGame,
		Verifier: b.app.Verifier,
		Board:    b.app.board(),
	},
		session.WithConfig(b.app.sessionConfig()),
		session.WithLogger(b.app.logger().With(slog.String("mode", string(b.adapter.Mode)))),
	)
}

func (b modeBinding[T]) newStudyView(state *SharedState, preset *groupPreset) View {
	return newStudyView(state, b, preset)
}
