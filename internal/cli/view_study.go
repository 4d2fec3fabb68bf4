package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// studyViewSeq tags the messages of each study view so a late reply from a
// closed view is never applied to its successor.
var studyViewSeq atomic.Uint64

type studyGroupsMsg struct {
	owner  uint64
	groups []domain.StudyGroup
	err    error
}

type studyStartedMsg struct {
	owner uint64
	err   error
}

type studyJudgedMsg struct {
	owner uint64
	out   session.Outcome
	err   error
}

type studyGuessMsg struct {
	owner uint64
	res   session.GuessResult
	err   error
}

type studyAdvanceMsg struct {
	owner uint64
	cur   session.Cursor
}

var studyKeys = struct {
	Submit key.Binding
	Skip   key.Binding
	Next   key.Binding
	Verify key.Binding
	Repeat key.Binding
	Again  key.Binding
	Back   key.Binding
	Giveup key.Binding
}{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check")),
	Skip:   key.NewBinding(key.WithKeys("ctrl+s", "tab"), key.WithHelp("tab", "skip")),
	Next:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "next")),
	Verify: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "ask AI")),
	Repeat: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat mistakes")),
	Again:  key.NewBinding(key.WithKeys("c", "enter"), key.WithHelp("c", "new session")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Giveup: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "give up")),
}

// studyView runs one exercise mode: group selection, the answer loop with
// the word-guess overlay, and the summary screen.
type studyView[T any] struct {
	state   *SharedState
	binding modeBinding[T]
	ctrl    *session.Controller[T]
	owner   uint64
	preset  *groupPreset

	groups         []domain.StudyGroup
	form           *huh.Form
	selected       []string
	includeLearned bool

	input   textinput.Model
	spinner spinner.Model
	waiting bool

	outcome  *session.Outcome
	lastGame *session.GuessResult
	summary  *domain.Summary
	notice   string
	err      error
}

func newStudyView[T any](state *SharedState, b modeBinding[T], preset *groupPreset) *studyView[T] {
	ti := textinput.New()
	ti.Placeholder = "Type your answer and press Enter..."
	ti.CharLimit = 200
	ti.Width = 50
	ti.Prompt = "› "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleHeader

	return &studyView[T]{
		state:   state,
		binding: b,
		ctrl:    b.newController(),
		owner:   studyViewSeq.Add(1),
		preset:  preset,
		input:   ti,
		spinner: sp,
	}
}

func (v *studyView[T]) ID() ViewID    { return ViewStudy }
func (v *studyView[T]) Title() string { return v.binding.Mode().Label() }

// CapturesInput keeps q and esc away from the app model; the study view
// handles both itself.
func (v *studyView[T]) CapturesInput() bool { return true }

func (v *studyView[T]) ShortHelp() []key.Binding {
	snap := v.ctrl.Snapshot()
	switch snap.Phase {
	case domain.PhaseActive:
		if snap.MiniGame != nil {
			return []key.Binding{studyKeys.Submit, studyKeys.Giveup}
		}
		switch snap.Status {
		case domain.AnswerTyping:
			return []key.Binding{studyKeys.Submit, studyKeys.Skip, studyKeys.Back}
		case domain.AnswerWrong:
			if v.binding.AIAvailable() && !snap.AIUsed {
				return []key.Binding{studyKeys.Next, studyKeys.Verify, studyKeys.Back}
			}
		}
		return []key.Binding{studyKeys.Next, studyKeys.Back}
	case domain.PhaseSummary:
		if v.summary != nil && v.summary.CanRepeat {
			return []key.Binding{studyKeys.Repeat, studyKeys.Again, studyKeys.Back}
		}
		return []key.Binding{studyKeys.Again, studyKeys.Back}
	}
	return []key.Binding{studyKeys.Back}
}

func (v *studyView[T]) Init() tea.Cmd {
	if v.preset != nil {
		return v.start(v.preset.groupIDs, v.preset.includeLearned)
	}
	return v.loadGroups()
}

// ── async commands ───────────────────────────────────────────────────────────

func (v *studyView[T]) loadGroups() tea.Cmd {
	v.waiting = true
	ctrl, owner := v.ctrl, v.owner
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		groups, err := ctrl.Groups(context.Background())
		return studyGroupsMsg{owner: owner, groups: groups, err: err}
	})
}

func (v *studyView[T]) start(groupIDs []string, includeLearned bool) tea.Cmd {
	v.waiting = true
	v.form = nil
	v.notice = ""
	ctrl, owner := v.ctrl, v.owner
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		err := ctrl.Start(context.Background(), groupIDs, includeLearned)
		return studyStartedMsg{owner: owner, err: err}
	})
}

func (v *studyView[T]) submit() tea.Cmd {
	answer := v.input.Value()
	if strings.TrimSpace(answer) == "" {
		v.notice = "Type an answer first, or press tab to skip."
		return nil
	}
	v.waiting = true
	v.notice = ""
	v.input.Blur()
	ctrl, owner := v.ctrl, v.owner
	return func() tea.Msg {
		out, err := ctrl.Submit(context.Background(), answer)
		return studyJudgedMsg{owner: owner, out: out, err: err}
	}
}

func (v *studyView[T]) verify() tea.Cmd {
	v.waiting = true
	v.notice = "Asking the AI tutor..."
	ctrl, owner := v.ctrl, v.owner
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		out, err := ctrl.Verify(context.Background())
		return studyJudgedMsg{owner: owner, out: out, err: err}
	})
}

func (v *studyView[T]) guess() tea.Cmd {
	word := v.input.Value()
	v.waiting = true
	v.notice = ""
	ctrl, owner := v.ctrl, v.owner
	return func() tea.Msg {
		res, err := ctrl.Guess(context.Background(), word)
		return studyGuessMsg{owner: owner, res: res, err: err}
	}
}

func (v *studyView[T]) scheduleAdvance(r session.Resume) tea.Cmd {
	if r.Delay <= 0 {
		return nil
	}
	owner := v.owner
	return tea.Tick(r.Delay, func(_ time.Time) tea.Msg {
		return studyAdvanceMsg{owner: owner, cur: r.Cursor}
	})
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *studyView[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case studyGroupsMsg:
		if msg.owner != v.owner {
			return v, nil
		}
		v.waiting = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.groups = msg.groups
		return v, v.buildForm()

	case studyStartedMsg:
		if msg.owner != v.owner {
			return v, nil
		}
		v.waiting = false
		return v, v.afterStart(msg.err)

	case studyJudgedMsg:
		if msg.owner != v.owner {
			return v, nil
		}
		v.waiting = false
		return v, v.afterJudge(msg.out, msg.err)

	case studyGuessMsg:
		if msg.owner != v.owner {
			return v, nil
		}
		v.waiting = false
		return v, v.afterGuess(msg.res, msg.err)

	case studyAdvanceMsg:
		if msg.owner != v.owner {
			return v, nil
		}
		if v.ctrl.AdvanceFrom(msg.cur) {
			return v, v.afterStep(nil)
		}
		return v, nil

	case refreshViewMsg:
		return v, nil

	case spinner.TickMsg:
		if !v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	if v.form != nil {
		return v, v.updateForm(msg)
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *studyView[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch v.ctrl.Phase() {
	case domain.PhaseActive:
		return v, v.handleActiveKey(msg)
	case domain.PhaseSummary:
		return v, v.handleSummaryKey(msg)
	}

	if msg.Type == tea.KeyEsc || (v.form == nil && msg.String() == "q") {
		v.ctrl.Exit()
		return v, popView()
	}
	if v.form != nil && !v.waiting {
		return v, v.updateForm(msg)
	}
	return v, nil
}

func (v *studyView[T]) handleActiveKey(msg tea.KeyMsg) tea.Cmd {
	snap := v.ctrl.Snapshot()

	if msg.Type == tea.KeyEsc {
		if snap.MiniGame != nil {
			if v.waiting {
				return nil
			}
			res, err := v.ctrl.CloseMiniGame()
			if err != nil {
				v.notice = err.Error()
				return nil
			}
			v.resetInput()
			v.notice = "Word game skipped."
			return v.scheduleAdvance(res)
		}
		v.ctrl.Exit()
		return tea.Batch(popView(), refreshViews())
	}
	if v.waiting {
		return nil
	}

	if snap.MiniGame != nil {
		if msg.Type == tea.KeyEnter {
			return v.guess()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return cmd
	}

	if snap.Status == domain.AnswerTyping {
		switch {
		case key.Matches(msg, studyKeys.Skip):
			return v.afterStep(v.ctrl.Skip())
		case msg.Type == tea.KeyEnter:
			return v.submit()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, studyKeys.Next):
		return v.afterStep(v.ctrl.Next())
	case key.Matches(msg, studyKeys.Verify) && snap.Status == domain.AnswerWrong:
		if !v.binding.AIAvailable() {
			v.notice = session.ErrAIUnavailable.Error()
			return nil
		}
		if snap.AIUsed {
			v.notice = session.ErrAIAlreadyUsed.Error()
			return nil
		}
		return v.verify()
	}
	return nil
}

func (v *studyView[T]) handleSummaryKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc || msg.String() == "q":
		v.ctrl.Exit()
		return tea.Batch(popView(), refreshViews())
	case key.Matches(msg, studyKeys.Repeat):
		if err := v.ctrl.RepeatMistakes(); err != nil {
			v.notice = err.Error()
			return nil
		}
		v.summary = nil
		return v.prepareAnswerInput()
	case key.Matches(msg, studyKeys.Again):
		if err := v.ctrl.Continue(); err != nil {
			v.notice = err.Error()
			return nil
		}
		v.summary = nil
		v.preset = nil
		return tea.Batch(v.loadGroups(), refreshViews())
	}
	return nil
}

// ── state transitions ────────────────────────────────────────────────────────

func (v *studyView[T]) afterStart(err error) tea.Cmd {
	switch {
	case errors.Is(err, session.ErrNoItems):
		v.notice = "Nothing left to study here. Include learned items or pick other groups."
		return v.backToSelection()
	case errors.Is(err, session.ErrSessionClosed):
		return nil
	case err != nil:
		v.notice = "Could not start: " + err.Error()
		return v.backToSelection()
	}
	return v.prepareAnswerInput()
}

// backToSelection shows the group picker again, fetching the groups first
// when they were never loaded.
func (v *studyView[T]) backToSelection() tea.Cmd {
	v.preset = nil
	if v.groups == nil {
		return v.loadGroups()
	}
	return v.buildForm()
}

func (v *studyView[T]) afterJudge(out session.Outcome, err error) tea.Cmd {
	if errors.Is(err, session.ErrSessionClosed) {
		return nil
	}
	if err != nil {
		v.notice = err.Error()
		return nil
	}
	v.notice = ""
	v.outcome = &out
	v.lastGame = nil
	if out.MiniGame {
		return v.prepareGuessInput()
	}
	return v.scheduleAdvance(out.Resume)
}

func (v *studyView[T]) afterGuess(res session.GuessResult, err error) tea.Cmd {
	if errors.Is(err, session.ErrSessionClosed) {
		return nil
	}
	if err != nil {
		v.notice = err.Error()
		return nil
	}
	v.input.SetValue("")
	if !res.Finished {
		return nil
	}
	v.lastGame = &res
	v.resetInput()
	if res.Won {
		v.notice = fmt.Sprintf("You got it! +%d bonus points.", res.Bonus)
	} else {
		v.notice = "Out of guesses."
	}
	return v.scheduleAdvance(res.Resume)
}

// afterStep refreshes the view after a synchronous Next, Skip or timed
// advance.
func (v *studyView[T]) afterStep(err error) tea.Cmd {
	if err != nil {
		v.notice = err.Error()
		return nil
	}
	v.outcome = nil
	v.lastGame = nil
	v.notice = ""
	if v.ctrl.Phase() == domain.PhaseSummary {
		s, err := v.ctrl.Summary()
		if err == nil {
			v.summary = &s
		}
		v.input.Blur()
		return nil
	}
	return v.prepareAnswerInput()
}

func (v *studyView[T]) prepareAnswerInput() tea.Cmd {
	v.resetInput()
	v.outcome = nil
	return v.input.Focus()
}

// resetInput clears the input back to answer mode without focusing it.
func (v *studyView[T]) resetInput() {
	v.input.Reset()
	v.input.Blur()
	v.input.CharLimit = 200
	v.input.Placeholder = "Type your answer and press Enter..."
}

func (v *studyView[T]) prepareGuessInput() tea.Cmd {
	length := 5
	if g := v.ctrl.Snapshot().MiniGame; g != nil {
		length = g.Length
	}
	v.input.Reset()
	v.input.CharLimit = length
	v.input.Placeholder = fmt.Sprintf("%d-letter word", length)
	return v.input.Focus()
}

// ── group selection ──────────────────────────────────────────────────────────

func (v *studyView[T]) buildForm() tea.Cmd {
	if len(v.groups) == 0 {
		v.form = nil
		return nil
	}
	v.selected = v.selected[:0]
	for _, g := range v.groups {
		v.selected = append(v.selected, g.ID)
	}
	v.form = groupSelectForm(v.groups, &v.selected, &v.includeLearned)
	return v.form.Init()
}

func (v *studyView[T]) updateForm(msg tea.Msg) tea.Cmd {
	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State != huh.StateCompleted {
		return cmd
	}
	if len(v.selected) == 0 {
		v.notice = "Select at least one group."
		return v.buildForm()
	}
	return tea.Batch(cmd, v.start(append([]string(nil), v.selected...), v.includeLearned))
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *studyView[T]) View() string {
	var b strings.Builder
	b.WriteString("\n")

	switch v.ctrl.Phase() {
	case domain.PhaseActive:
		v.renderActive(&b)
	case domain.PhaseSummary:
		v.renderSummary(&b)
	default:
		v.renderSelection(&b)
	}

	if v.notice != "" {
		b.WriteString("\n  " + formatter.StyleYellow.Render(v.notice) + "\n")
	}
	return b.String()
}

func (v *studyView[T]) renderSelection(b *strings.Builder) {
	switch {
	case v.waiting:
		fmt.Fprintf(b, "  %s %s\n", v.spinner.View(), formatter.Dim("Loading..."))
	case v.err != nil:
		// The controller prefixes the mode; the screen already names it.
		cause := v.err
		if inner := errors.Unwrap(cause); inner != nil {
			cause = inner
		}
		b.WriteString("  " + formatter.StyleRed.Render("Could not load groups: "+cause.Error()) + "\n")
		b.WriteString("  " + formatter.Dim("Press esc to go back.") + "\n")
	case v.form != nil:
		b.WriteString(v.form.View())
		b.WriteString("\n")
	default:
		b.WriteString("  " + formatter.Dim("No groups available for this mode yet.") + "\n")
	}
}

func (v *studyView[T]) renderActive(b *strings.Builder) {
	snap := v.ctrl.Snapshot()
	item, ok := snap.Current()
	if !ok {
		return
	}
	a := v.binding.adapter
	view := a.Item(item)

	pass := ""
	if snap.Pass > 1 {
		pass = formatter.StylePurple.Render(fmt.Sprintf("  repeat #%d", snap.Pass-1))
	}
	fmt.Fprintf(b, "  %s   %s %d  %s %d  %s %d   %s%s\n\n",
		formatter.RenderCounter(snap.CurrentIndex, len(snap.Items), 20),
		formatter.StyleGreen.Render("✔"), snap.Stats.Correct,
		formatter.StyleRed.Render("✘"), snap.Stats.Wrong,
		formatter.Dim("⤼"), snap.Stats.Skipped,
		formatter.Dim("session ")+formatter.Signed(snap.SessionPoints),
		pass,
	)

	var card strings.Builder
	card.WriteString(formatter.Bold(view.Prompt))
	if view.Category != "" {
		card.WriteString("\n" + formatter.StylePurple.Render(view.Category))
	}
	if view.Hint != "" {
		card.WriteString("\n" + formatter.Dim("hint: "+view.Hint))
	}
	if view.ImageURL != "" {
		card.WriteString("\n" + formatter.Dim(view.ImageURL))
	}
	b.WriteString(indent(formatter.RenderBox("", card.String())))
	b.WriteString("\n\n")

	if snap.MiniGame != nil {
		v.renderMiniGame(b, *snap.MiniGame)
		return
	}

	if snap.Status == domain.AnswerTyping {
		b.WriteString("  " + v.input.View() + "\n")
		if v.waiting {
			fmt.Fprintf(b, "\n  %s\n", formatter.Dim("Checking..."))
		}
		return
	}

	fmt.Fprintf(b, "  %s %s\n", formatter.Dim("your answer:"), snap.LastAnswer)
	if snap.Status == domain.AnswerCorrect {
		b.WriteString("  " + formatter.StyleGreen.Render("✔ Correct!"))
	} else {
		b.WriteString("  " + formatter.StyleRed.Render("✘ Expected: ") + formatter.Bold(view.ExpectedAnswer))
	}
	if s := snap.LastScore; s != nil {
		fmt.Fprintf(b, "  %s", formatter.Signed(s.PointsDelta))
		if s.NewCombo > 1 {
			b.WriteString("  " + formatter.StyleHeader.Render(fmt.Sprintf("combo ×%d", s.NewCombo)))
		}
	}
	b.WriteString("\n")
	if s := snap.LastScore; s != nil && s.Message != "" {
		b.WriteString("  " + formatter.StyleBlue.Render(s.Message) + "\n")
	}
	if v.outcome != nil && v.outcome.ScoreErr != nil {
		b.WriteString("  " + formatter.Dim("points unavailable: "+v.outcome.ScoreErr.Error()) + "\n")
	}
	if ver := snap.Verification; ver != nil {
		verdict := formatter.StyleRed.Render("AI: still wrong")
		if ver.IsCorrect {
			verdict = formatter.StyleGreen.Render("AI: accepted")
		}
		b.WriteString("  " + verdict)
		if ver.Explanation != "" {
			b.WriteString(" " + formatter.Dim(ver.Explanation))
		}
		b.WriteString("\n")
	}
	if snap.VerifyErr != nil {
		b.WriteString("  " + formatter.StyleRed.Render("AI check failed: "+snap.VerifyErr.Error()) + "\n")
	}
	if v.lastGame != nil {
		b.WriteString("\n" + indent(formatter.RenderBoard(v.lastGame.Game)) + "\n")
	}
	if v.waiting {
		fmt.Fprintf(b, "\n  %s\n", v.spinner.View())
	}
}

func (v *studyView[T]) renderMiniGame(b *strings.Builder, g session.Game) {
	title := fmt.Sprintf("Word game · %s left", formatter.Plural(g.RowsLeft(), "guess", "guesses"))
	body := formatter.RenderBoard(g) + "\n\n" + v.input.View()
	b.WriteString(indent(formatter.RenderAccentBox(title, body, formatter.ColorYellow)))
	b.WriteString("\n")
}

func (v *studyView[T]) renderSummary(b *strings.Builder) {
	if v.summary == nil {
		return
	}
	b.WriteString(indent(formatter.RenderBox("Session summary", formatter.FormatSummary(*v.summary))))
	b.WriteString("\n")
	if v.summary.CanRepeat {
		fmt.Fprintf(b, "\n  %s\n", formatter.Dim(fmt.Sprintf("press r to repeat %s", formatter.Plural(v.summary.Mistakes, "mistake", "mistakes"))))
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
