package cli

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/session"
	"github.com/alexanderramin/fiszki/internal/teatest"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with access to the appModel internals
// (view stack, shared state, study controller) the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app, sizes the terminal and drains
// Init. first, when non-nil, is pushed above the mode menu.
func NewTestDriver(t *testing.T, app *App, first func(*SharedState) View) *TestDriver {
	t.Helper()
	m := newAppModel(app, first)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports a quit seen by either the model or the driver.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// studyViewOf returns the active view as a study view of item type T.
func studyViewOf[T any](t *testing.T, d *TestDriver) *studyView[T] {
	t.Helper()
	m := d.appModel()
	v, ok := m.activeView().(*studyView[T])
	require.True(t, ok, "active view is %T", m.activeView())
	return v
}

// snapshotOf returns the controller state of the active study view.
func snapshotOf[T any](t *testing.T, d *TestDriver) session.State[T] {
	t.Helper()
	return studyViewOf[T](t, d).ctrl.Snapshot()
}

// ── fakes ──

// memSource serves items in a fixed order so tests can answer by position.
type memSource[T any] struct {
	mu      sync.Mutex
	groups  []domain.StudyGroup
	items   []T
	err     error
	reports map[string]bool
}

func (s *memSource[T]) ListGroups(context.Context) ([]domain.StudyGroup, error) {
	return s.groups, s.err
}

func (s *memSource[T]) StartSession(_ context.Context, _ []string, _ bool, _ int) ([]T, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]T(nil), s.items...), nil
}

func (s *memSource[T]) ReportProgress(_ context.Context, itemID string, learned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reports == nil {
		s.reports = map[string]bool{}
	}
	s.reports[itemID] = learned
	return nil
}

// stubScorer awards +10 for a hit and -5 for a miss. Calls listed in
// trigger (1-based) open the word game.
type stubScorer struct {
	mu      sync.Mutex
	calls   int
	total   int
	trigger map[int]bool
}

func (s *stubScorer) SubmitScore(_ context.Context, req domain.ScoreRequest) (domain.ScoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	delta := -5
	if req.IsCorrect {
		delta = 10
	}
	s.total += delta
	return domain.ScoreResult{PointsDelta: delta, NewTotalPoints: s.total, TriggerMiniGame: s.trigger[s.calls]}, nil
}

// stubGame accepts solution and marks every other guess absent.
type stubGame struct {
	solution string
}

func (g *stubGame) Start(context.Context, string) (session.Puzzle, error) {
	return session.Puzzle{Target: "token", Length: len([]rune(g.solution))}, nil
}

func (g *stubGame) Check(_ context.Context, _ string, guess string) ([]domain.Verdict, error) {
	out := make([]domain.Verdict, len([]rune(guess)))
	for i := range out {
		out[i] = domain.VerdictAbsent
		if guess == g.solution {
			out[i] = domain.VerdictCorrect
		}
	}
	return out, nil
}

type stubVerifier struct {
	mu    sync.Mutex
	calls int
	reply domain.Verification
}

func (v *stubVerifier) Verify(context.Context, domain.VerifyRequest) (domain.Verification, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	return v.reply, nil
}

func flashcardDeck() *memSource[domain.Flashcard] {
	return &memSource[domain.Flashcard]{
		groups: []domain.StudyGroup{{ID: "animals", Name: "Animals", TotalItems: 2}},
		items: []domain.Flashcard{
			{ID: "f1", TextPl: "kot", TextTarget: "chat"},
			{ID: "f2", TextPl: "pies", TextTarget: "chien"},
		},
	}
}

func translationDeck() *memSource[domain.TranslationItem] {
	return &memSource[domain.TranslationItem]{
		groups: []domain.StudyGroup{{ID: "home", Name: "Home", TotalItems: 1}},
		items: []domain.TranslationItem{
			{ID: "t1", TextPl: "dom", TextTarget: "maison", Category: "A1"},
		},
	}
}

// fastSession keeps tea.Tick delays well inside the driver's Cmd timeout.
func fastSession() session.Config {
	cfg := session.DefaultConfig()
	cfg.CorrectDelay = time.Millisecond
	cfg.CompletionDelay = time.Millisecond
	return cfg
}

func tuiApp() *App {
	return &App{
		Flashcards:    flashcardDeck(),
		TranslatePlFr: translationDeck(),
		Session:       fastSession(),
	}
}

// studyFirst opens mode directly with a fixed group selection.
func studyFirst(t *testing.T, app *App, mode string, groups ...string) func(*SharedState) View {
	t.Helper()
	sm, err := app.studyMode(mode)
	require.NoError(t, err)
	return func(s *SharedState) View {
		return sm.newStudyView(s, &groupPreset{groupIDs: groups})
	}
}
