// Package session implements the per-mode study state machine.
//
// A Controller walks a learner through the items of one exercise mode:
// selection → loading → active → summary, with an optional repeat pass over
// the mistakes of the previous one. Remote calls are made with the
// controller's lock released; while one is in flight every other action
// returns ErrBusy, so an item can never be scored twice and the next item can
// never be answered before the current outcome is recorded.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/matcher"
)

// Deps are the collaborators of a controller. Items is required. A nil
// Scorer skips scoring, a nil MiniGame ignores triggers and a nil Verifier
// makes AI verification unavailable.
type Deps[T any] struct {
	Items    ItemSource[T]
	Scorer   Scorer
	MiniGame MiniGame
	Verifier Verifier
	Board    *Scoreboard
}

// Cursor identifies the item an auto-advance was scheduled for.
type Cursor struct {
	gen   uint64
	index int
}

// Resume describes how the pending advance continues once the current item
// is judged and no mini-game is open. A zero Delay means the learner has to
// advance explicitly.
type Resume struct {
	Delay  time.Duration
	Cursor Cursor
}

// Outcome is the result of judging an answer.
type Outcome struct {
	Correct      bool
	Expected     string
	Score        *domain.ScoreResult
	ScoreErr     error
	Verification *domain.Verification
	MiniGame     bool
	Resume       Resume
}

// State is a snapshot of the controller for presentation.
type State[T any] struct {
	Phase         domain.Phase
	RunID         string
	Pass          int
	Items         []T
	CurrentIndex  int
	Status        domain.AnswerStatus
	Stats         domain.SessionStats
	Mistakes      []T
	SessionPoints int
	Breakdown     domain.PointsBreakdown
	MaxCombo      int
	Busy          bool
	LastAnswer    string
	LastScore     *domain.ScoreResult
	Verification  *domain.Verification
	VerifyErr     error
	AIUsed        bool
	MiniGame      *Game
	LoadErr       error
	Totals        Totals
}

// Current returns the item being answered.
func (s State[T]) Current() (T, bool) {
	var zero T
	if s.Phase != domain.PhaseActive || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Items) {
		return zero, false
	}
	return s.Items[s.CurrentIndex], true
}

type run[T any] struct {
	id        string
	pass      int
	items     []T
	index     int
	status    domain.AnswerStatus
	stats     domain.SessionStats
	mistakes  []T
	points    int
	breakdown domain.PointsBreakdown
	maxCombo  int

	answer       string
	mistakeAt    int
	aiUsed       bool
	verification *domain.Verification
	verifyErr    error
	lastScore    *domain.ScoreResult
	game         *game
}

func newRun[T any](id string, pass int, items []T, start time.Time) *run[T] {
	return &run[T]{
		id:        id,
		pass:      pass,
		items:     items,
		status:    domain.AnswerTyping,
		stats:     domain.SessionStats{StartTime: start},
		mistakeAt: -1,
	}
}

func (r *run[T]) resetItem() {
	r.status = domain.AnswerTyping
	r.answer = ""
	r.mistakeAt = -1
	r.aiUsed = false
	r.verification = nil
	r.verifyErr = nil
	r.lastScore = nil
}

func (r *run[T]) applyScore(res domain.ScoreResult, aiAttributed bool) {
	d := res.PointsDelta
	r.points += d
	switch {
	case d > 0 && aiAttributed:
		r.breakdown.AICorrected += d
	case d > 0:
		r.breakdown.Gained += d
	case d < 0:
		r.breakdown.Lost += -d
	}
	r.maxCombo = max(r.maxCombo, res.NewCombo)
	r.lastScore = &res
}

func (r *run[T]) dropMistake() {
	if r.mistakeAt < 0 || r.mistakeAt >= len(r.mistakes) {
		return
	}
	r.mistakes = append(r.mistakes[:r.mistakeAt], r.mistakes[r.mistakeAt+1:]...)
	r.mistakeAt = -1
}

// Controller is the state machine of one exercise mode. It is safe to read
// snapshots from a rendering goroutine while actions run elsewhere.
type Controller[T any] struct {
	adapter  Adapter[T]
	items    ItemSource[T]
	scorer   Scorer
	minigame MiniGame
	verifier Verifier
	board    *Scoreboard
	opts     options

	mu      sync.Mutex
	phase   domain.Phase
	gen     uint64
	busy    bool
	run     *run[T]
	loadErr error
}

func NewController[T any](a Adapter[T], deps Deps[T], opts ...Option) *Controller[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	board := deps.Board
	if board == nil {
		board = NewScoreboard(0, 0)
	}
	return &Controller[T]{
		adapter:  a,
		items:    deps.Items,
		scorer:   deps.Scorer,
		minigame: deps.MiniGame,
		verifier: deps.Verifier,
		board:    board,
		opts:     o,
		phase:    domain.PhaseSelection,
	}
}

func (c *Controller[T]) Adapter() Adapter[T] { return c.adapter }

func (c *Controller[T]) Scoreboard() *Scoreboard { return c.board }

func (c *Controller[T]) Phase() domain.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// AIAvailable reports whether wrong answers can be sent for re-checking.
func (c *Controller[T]) AIAvailable() bool {
	return c.verifier != nil && c.adapter.TaskType != domain.TaskNone
}

func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State[T]{
		Phase:   c.phase,
		Busy:    c.busy,
		LoadErr: c.loadErr,
		Totals:  c.board.Totals(),
	}
	r := c.run
	if r == nil {
		return s
	}
	s.RunID = r.id
	s.Pass = r.pass
	s.Items = append([]T(nil), r.items...)
	s.CurrentIndex = r.index
	s.Status = r.status
	s.Stats = r.stats
	s.Mistakes = append([]T(nil), r.mistakes...)
	s.SessionPoints = r.points
	s.Breakdown = r.breakdown
	s.MaxCombo = r.maxCombo
	s.LastAnswer = r.answer
	s.LastScore = r.lastScore
	s.Verification = r.verification
	s.VerifyErr = r.verifyErr
	s.AIUsed = r.aiUsed
	if r.game != nil {
		g := r.game.view()
		s.MiniGame = &g
	}
	return s
}

// Groups lists the groups a session can be started from.
func (c *Controller[T]) Groups(ctx context.Context) ([]domain.StudyGroup, error) {
	groups, err := c.items.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s groups: %w", c.adapter.Mode, err)
	}
	return groups, nil
}

// Start requests the items of a new session and enters the active phase. On
// failure the controller is back in selection with no partial state.
func (c *Controller[T]) Start(ctx context.Context, groupIDs []string, includeLearned bool) error {
	c.mu.Lock()
	if c.phase != domain.PhaseSelection {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	c.gen++
	g := c.gen
	c.loadErr = nil
	c.setPhase(domain.PhaseLoading, "")
	limit := c.opts.cfg.Limit
	c.mu.Unlock()

	items, err := c.items.StartSession(ctx, groupIDs, includeLearned, limit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != g {
		return ErrSessionClosed
	}
	if err == nil && len(items) == 0 {
		err = ErrNoItems
	}
	if err != nil {
		c.loadErr = err
		c.setPhase(domain.PhaseSelection, "")
		return fmt.Errorf("start %s session: %w", c.adapter.Mode, err)
	}
	c.run = newRun(c.opts.newID(), 1, items, c.opts.now())
	c.setPhase(domain.PhaseActive, c.run.id)
	return nil
}

// Submit judges input against the current item.
func (c *Controller[T]) Submit(ctx context.Context, input string) (Outcome, error) {
	c.mu.Lock()
	r, err := c.activeRun()
	if err == nil && r.status != domain.AnswerTyping {
		err = ErrNotTyping
	}
	if err == nil && strings.TrimSpace(input) == "" {
		err = ErrEmptyAnswer
	}
	if err != nil {
		c.mu.Unlock()
		return Outcome{}, err
	}

	item := r.items[r.index]
	expected := c.adapter.Answer(item)
	correct := matcher.Match(input, expected)
	r.answer = input
	if correct {
		r.status = domain.AnswerCorrect
		r.stats.Correct++
	} else {
		r.status = domain.AnswerWrong
		r.stats.Wrong++
		r.mistakeAt = len(r.mistakes)
		r.mistakes = append(r.mistakes, item)
	}
	c.reportProgress(ctx, c.adapter.ID(item), correct)
	c.busy = true
	g := c.gen
	c.mu.Unlock()

	out := Outcome{Correct: correct, Expected: expected}
	err = c.settle(ctx, g, item, correct, false, &out)
	return out, err
}

// Verify asks the AI verifier to re-judge the current wrong answer. A
// correct verdict reclassifies the item and scores it as AI-corrected. A
// failed call leaves the item wrong and can be retried; a completed call
// uses up the item's one re-check for this pass.
func (c *Controller[T]) Verify(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	r, err := c.activeRun()
	switch {
	case err != nil:
	case r.status != domain.AnswerWrong:
		err = ErrNotWrong
	case !c.AIAvailable():
		err = ErrAIUnavailable
	case r.aiUsed:
		err = ErrAIAlreadyUsed
	}
	if err != nil {
		c.mu.Unlock()
		return Outcome{}, err
	}

	item := r.items[r.index]
	req := domain.VerifyRequest{
		TaskType:       c.adapter.TaskType,
		ItemID:         c.adapter.ID(item),
		UserAnswer:     r.answer,
		Question:       c.adapter.Prompt(item),
		ExpectedAnswer: c.adapter.Answer(item),
	}
	r.verifyErr = nil
	c.busy = true
	g := c.gen
	c.mu.Unlock()

	v, err := c.verifier.Verify(ctx, req)

	c.mu.Lock()
	if c.gen != g {
		c.mu.Unlock()
		return Outcome{}, ErrSessionClosed
	}
	out := Outcome{Expected: req.ExpectedAnswer}
	if err != nil {
		c.busy = false
		r.verifyErr = err
		c.opts.logger.Warn("ai verification failed",
			"mode", c.adapter.Mode, "run_id", r.id, "item_id", req.ItemID, "error", err)
		c.mu.Unlock()
		return out, fmt.Errorf("verify answer: %w", err)
	}
	r.aiUsed = true
	r.verification = &v
	out.Verification = &v
	if !v.IsCorrect {
		c.busy = false
		out.Resume = c.resume(r)
		c.mu.Unlock()
		return out, nil
	}

	r.stats.Wrong--
	r.stats.Correct++
	r.dropMistake()
	r.status = domain.AnswerCorrect
	out.Correct = true
	c.reportProgress(ctx, req.ItemID, true)
	c.mu.Unlock()

	err = c.settle(ctx, g, item, true, true, &out)
	return out, err
}

// settle runs the scoring call for a judged item and, when the scoring
// authority asks for it, opens the mini-game. It is entered with busy set
// and the lock released.
func (c *Controller[T]) settle(ctx context.Context, g uint64, item T, correct, aiAttributed bool, out *Outcome) error {
	var (
		res      domain.ScoreResult
		scoreErr error
		scored   bool
	)
	if c.scorer != nil {
		res, scoreErr = c.scorer.SubmitScore(ctx, domain.ScoreRequest{
			ItemID:    c.adapter.ID(item),
			IsCorrect: correct,
			IsKnown:   c.adapter.known(item),
			Level:     c.opts.cfg.Level,
		})
		scored = scoreErr == nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if scored {
		c.board.Apply(res)
	}
	if c.gen != g {
		return ErrSessionClosed
	}
	r := c.run
	switch {
	case scoreErr != nil:
		out.ScoreErr = scoreErr
		c.opts.logger.Warn("scoring failed",
			"mode", c.adapter.Mode, "run_id", r.id, "item_id", c.adapter.ID(item), "correct", correct, "error", scoreErr)
	case scored:
		r.applyScore(res, aiAttributed)
		out.Score = &res
	}

	if scored && res.TriggerMiniGame && c.minigame != nil {
		c.mu.Unlock()
		puzzle, err := c.minigame.Start(ctx, c.opts.cfg.Level)
		c.mu.Lock()
		if c.gen != g {
			return ErrSessionClosed
		}
		if err != nil {
			c.opts.logger.Warn("mini-game start failed", "mode", c.adapter.Mode, "run_id", r.id, "error", err)
		} else {
			r.game = newGame(puzzle, c.opts.cfg)
			out.MiniGame = true
			c.opts.logger.Debug("mini-game opened", "mode", c.adapter.Mode, "run_id", r.id, "length", r.game.length)
		}
	}
	c.busy = false
	if r.game == nil {
		out.Resume = c.resume(r)
	}
	return nil
}

// Skip counts the current item as skipped and moves on without scoring.
func (c *Controller[T]) Skip() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, err := c.activeRun()
	if err != nil {
		return err
	}
	if r.status != domain.AnswerTyping {
		return ErrNotTyping
	}
	r.stats.Skipped++
	c.advance(r)
	return nil
}

// Next advances past a judged item.
func (c *Controller[T]) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, err := c.activeRun()
	if err != nil {
		return err
	}
	if r.status == domain.AnswerTyping {
		return ErrNotJudged
	}
	c.advance(r)
	return nil
}

// AdvanceFrom performs a scheduled auto-advance. It does nothing unless the
// controller is still on the item the cursor was issued for, so a timer that
// fires after an explicit Next, an exit or a new pass is harmless.
func (c *Controller[T]) AdvanceFrom(cur Cursor) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, err := c.activeRun()
	if err != nil || cur.gen != c.gen || r.index != cur.index || r.status == domain.AnswerTyping {
		return false
	}
	c.advance(r)
	return true
}

// Guess submits one word-guess row to the open mini-game. A failed check is
// returned without using up a row.
func (c *Controller[T]) Guess(ctx context.Context, guess string) (GuessResult, error) {
	c.mu.Lock()
	if c.phase != domain.PhaseActive || c.run == nil || c.run.game == nil {
		c.mu.Unlock()
		return GuessResult{}, ErrNoMiniGame
	}
	if c.busy {
		c.mu.Unlock()
		return GuessResult{}, ErrBusy
	}
	r, gm := c.run, c.run.game
	guess, err := gm.normalizeGuess(guess)
	if err != nil {
		c.mu.Unlock()
		return GuessResult{}, err
	}
	c.busy = true
	g := c.gen
	c.mu.Unlock()

	verdicts, err := c.minigame.Check(ctx, gm.target, guess)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != g {
		return GuessResult{}, ErrSessionClosed
	}
	c.busy = false
	if r.game != gm {
		return GuessResult{}, ErrNoMiniGame
	}
	if err != nil {
		c.opts.logger.Warn("mini-game check failed", "mode", c.adapter.Mode, "run_id", r.id, "error", err)
		return GuessResult{}, fmt.Errorf("check guess: %w", err)
	}
	row, err := gm.accept(guess, verdicts)
	if err != nil {
		c.opts.logger.Warn("mini-game check failed", "mode", c.adapter.Mode, "run_id", r.id, "error", err)
		return GuessResult{}, err
	}

	res := GuessResult{Row: row, Game: gm.view()}
	if gm.won() || gm.exhausted() {
		res.Finished = true
		res.Won = gm.won()
		res.Bonus, res.Resume = c.closeGame(r, res.Won)
	}
	return res, nil
}

// CloseMiniGame abandons the open mini-game without points.
func (c *Controller[T]) CloseMiniGame() (Resume, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != domain.PhaseActive || c.run == nil || c.run.game == nil {
		return Resume{}, ErrNoMiniGame
	}
	if c.busy {
		return Resume{}, ErrBusy
	}
	_, res := c.closeGame(c.run, false)
	return res, nil
}

// Summary returns the record of the finished pass.
func (c *Controller[T]) Summary() (domain.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != domain.PhaseSummary || c.run == nil {
		return domain.Summary{}, ErrWrongPhase
	}
	r := c.run
	total := len(r.items)
	var d time.Duration
	if r.stats.EndTime != nil {
		d = r.stats.EndTime.Sub(r.stats.StartTime)
	}
	return domain.Summary{
		Mode:          c.adapter.Mode,
		Correct:       r.stats.Correct,
		Wrong:         r.stats.Wrong,
		Skipped:       r.stats.Skipped,
		Total:         total,
		Accuracy:      domain.AccuracyPercent(r.stats.Correct, total),
		Duration:      d,
		SessionPoints: r.points,
		Breakdown:     r.breakdown,
		MaxCombo:      r.maxCombo,
		Mistakes:      len(r.mistakes),
		CanRepeat:     len(r.mistakes) > 0,
	}, nil
}

// Continue leaves the summary for group selection, discarding the run.
func (c *Controller[T]) Continue() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != domain.PhaseSummary {
		return ErrWrongPhase
	}
	c.reset()
	return nil
}

// RepeatMistakes starts a new pass whose items are exactly the mistakes of
// the finished one, in order.
func (c *Controller[T]) RepeatMistakes() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != domain.PhaseSummary || c.run == nil {
		return ErrWrongPhase
	}
	if len(c.run.mistakes) == 0 {
		return ErrNoMistakes
	}
	items := append([]T(nil), c.run.mistakes...)
	c.gen++
	c.run = newRun(c.opts.newID(), c.run.pass+1, items, c.opts.now())
	c.setPhase(domain.PhaseActive, c.run.id)
	return nil
}

// Exit returns to selection from any phase. Calls still in flight finish on
// their own and their results are dropped.
func (c *Controller[T]) Exit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == domain.PhaseSelection && c.run == nil {
		return
	}
	c.reset()
}

func (c *Controller[T]) reset() {
	c.gen++
	c.busy = false
	c.run = nil
	c.setPhase(domain.PhaseSelection, "")
}

// activeRun returns the run if an item action is currently allowed.
func (c *Controller[T]) activeRun() (*run[T], error) {
	switch {
	case c.phase != domain.PhaseActive || c.run == nil:
		return nil, ErrWrongPhase
	case c.busy:
		return nil, ErrBusy
	case c.run.game != nil:
		return nil, ErrMiniGameActive
	}
	return c.run, nil
}

func (c *Controller[T]) advance(r *run[T]) {
	if r.index+1 >= len(r.items) {
		end := c.opts.now()
		r.stats.EndTime = &end
		c.setPhase(domain.PhaseSummary, r.id)
		return
	}
	r.index++
	r.resetItem()
}

func (c *Controller[T]) resume(r *run[T]) Resume {
	res := Resume{Cursor: Cursor{gen: c.gen, index: r.index}}
	if r.status != domain.AnswerCorrect {
		return res
	}
	if r.index == len(r.items)-1 {
		res.Delay = c.opts.cfg.CompletionDelay
	} else {
		res.Delay = c.opts.cfg.CorrectDelay
	}
	return res
}

func (c *Controller[T]) closeGame(r *run[T], won bool) (int, Resume) {
	bonus := 0
	if won {
		bonus = c.opts.cfg.MiniGameBonus
		r.points += bonus
		r.breakdown.MiniGameBonus += bonus
		c.board.AddBonus(bonus)
	}
	r.game = nil
	c.opts.logger.Debug("mini-game closed", "mode", c.adapter.Mode, "run_id", r.id, "won", won, "bonus", bonus)
	return bonus, c.resume(r)
}

// reportProgress sends a detached progress report. Its completion is never
// awaited and its failure only reaches the log.
func (c *Controller[T]) reportProgress(ctx context.Context, itemID string, learned bool) {
	ctx = context.WithoutCancel(ctx)
	src, logger, mode := c.items, c.opts.logger, c.adapter.Mode
	c.opts.detach(func() {
		if err := src.ReportProgress(ctx, itemID, learned); err != nil {
			logger.Warn("progress report failed", "mode", mode, "item_id", itemID, "learned", learned, "error", err)
		}
	})
}

func (c *Controller[T]) setPhase(to domain.Phase, runID string) {
	from := c.phase
	c.phase = to
	c.opts.logger.Debug("session phase", "mode", c.adapter.Mode, "run_id", runID, "from", from, "to", to)
}
