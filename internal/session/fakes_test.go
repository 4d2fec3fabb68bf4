package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/stretchr/testify/require"
)

type card struct {
	ID  string
	Q   string
	A   string
	Old bool
}

var cardAdapter = Adapter[card]{
	Mode:     domain.ModeTranslatePlToFr,
	TaskType: domain.TaskTranslatePlToTarget,
	ID:       func(c card) string { return c.ID },
	Prompt:   func(c card) string { return c.Q },
	Answer:   func(c card) string { return c.A },
	Known:    func(c card) bool { return c.Old },
}

func threeCards() []card {
	return []card{
		{ID: "1", Q: "kot", A: "chat"},
		{ID: "2", Q: "pies", A: "chien"},
		{ID: "3", Q: "szkoła", A: "école"},
	}
}

type progressCall struct {
	ItemID  string
	Learned bool
}

type fakeSource struct {
	mu        sync.Mutex
	groups    []domain.StudyGroup
	items     []card
	err       error
	reportErr error

	gotGroupIDs []string
	gotInclude  bool
	gotLimit    int
	reports     []progressCall
	order       *[]string
}

func (f *fakeSource) ListGroups(context.Context) ([]domain.StudyGroup, error) {
	return f.groups, f.err
}

func (f *fakeSource) StartSession(_ context.Context, groupIDs []string, includeLearned bool, limit int) ([]card, error) {
	f.gotGroupIDs, f.gotInclude, f.gotLimit = groupIDs, includeLearned, limit
	if f.err != nil {
		return nil, f.err
	}
	return append([]card(nil), f.items...), nil
}

func (f *fakeSource) ReportProgress(_ context.Context, itemID string, learned bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, progressCall{itemID, learned})
	if f.order != nil {
		*f.order = append(*f.order, "progress:"+itemID)
	}
	return f.reportErr
}

// fakeScorer behaves like a tiny scoring server: +10 for a correct answer,
// -5 for a wrong one, combo resets on a miss.
type fakeScorer struct {
	calls   []domain.ScoreRequest
	total   int
	combo   int
	err     error
	trigger map[int]bool // 1-based call numbers that trigger the mini-game
	order   *[]string
}

func (f *fakeScorer) SubmitScore(_ context.Context, req domain.ScoreRequest) (domain.ScoreResult, error) {
	f.calls = append(f.calls, req)
	if f.order != nil {
		*f.order = append(*f.order, "score:"+req.ItemID)
	}
	if f.err != nil {
		return domain.ScoreResult{}, f.err
	}
	delta := -5
	if req.IsCorrect {
		delta = 10
		f.combo++
	} else {
		f.combo = 0
	}
	f.total += delta
	return domain.ScoreResult{
		PointsDelta:     delta,
		NewTotalPoints:  f.total,
		NewCombo:        f.combo,
		TriggerMiniGame: f.trigger[len(f.calls)],
	}, nil
}

type fakeGame struct {
	puzzle   Puzzle
	startErr error
	starts   int
	checkErr error
	// verdicts is consumed one row per Check call; when empty every letter
	// is absent.
	verdicts [][]domain.Verdict
	guesses  []string
}

func (f *fakeGame) Start(context.Context, string) (Puzzle, error) {
	f.starts++
	return f.puzzle, f.startErr
}

func (f *fakeGame) Check(_ context.Context, target, guess string) ([]domain.Verdict, error) {
	f.guesses = append(f.guesses, guess)
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	if len(f.verdicts) > 0 {
		v := f.verdicts[0]
		f.verdicts = f.verdicts[1:]
		return v, nil
	}
	out := make([]domain.Verdict, len([]rune(guess)))
	for i := range out {
		out[i] = domain.VerdictAbsent
	}
	return out, nil
}

func allCorrect(n int) []domain.Verdict {
	out := make([]domain.Verdict, n)
	for i := range out {
		out[i] = domain.VerdictCorrect
	}
	return out
}

type fakeVerifier struct {
	calls []domain.VerifyRequest
	reply domain.Verification
	err   error
}

func (f *fakeVerifier) Verify(_ context.Context, req domain.VerifyRequest) (domain.Verification, error) {
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	ctrl     *Controller[card]
	src      *fakeSource
	scorer   *fakeScorer
	game     *fakeGame
	verifier *fakeVerifier
	clock    *fakeClock
	logs     *bytes.Buffer
}

func newHarness(t *testing.T, items []card) *harness {
	t.Helper()
	h := &harness{
		src:      &fakeSource{items: items},
		scorer:   &fakeScorer{},
		game:     &fakeGame{puzzle: Puzzle{Target: "opaque-token", Length: 5}},
		verifier: &fakeVerifier{},
		clock:    &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		logs:     &bytes.Buffer{},
	}
	n := 0
	h.ctrl = NewController(cardAdapter, Deps[card]{
		Items:    h.src,
		Scorer:   h.scorer,
		MiniGame: h.game,
		Verifier: h.verifier,
		Board:    NewScoreboard(0, 0),
	},
		WithLogger(slog.New(slog.NewTextHandler(h.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		WithClock(h.clock.now),
		WithDetach(func(f func()) { f() }),
		WithRunIDs(func() string { n++; return fmt.Sprintf("run-%d", n) }),
	)
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	require.NoError(t, h.ctrl.Start(context.Background(), []string{"g1"}, false))
}

func (h *harness) submit(t *testing.T, input string) Outcome {
	t.Helper()
	out, err := h.ctrl.Submit(context.Background(), input)
	require.NoError(t, err, "submit %q", input)
	return out
}

// checkConservation asserts the counter and points invariants on a snapshot.
func checkConservation(t *testing.T, s State[card]) {
	t.Helper()
	require.Equal(t, s.SessionPoints, s.Breakdown.Net(), "breakdown %+v", s.Breakdown)

	visited := s.Stats.Visited()
	require.LessOrEqual(t, visited, len(s.Items))
	want := s.CurrentIndex
	if s.Phase == domain.PhaseSummary {
		want = len(s.Items)
	} else if s.Status != domain.AnswerTyping {
		want++
	}
	require.Equal(t, want, visited, "index %d status %s", s.CurrentIndex, s.Status)
}

var errBoom = errors.New("boom")
