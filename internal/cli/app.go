package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/importer"
	"github.com/alexanderramin/fiszki/internal/modes"
	"github.com/alexanderramin/fiszki/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// StatsSource reads the account statistics shown by the dashboard.
type StatsSource interface {
	Dashboard(ctx context.Context) (domain.UserStats, error)
}

// DeckImporter loads a parsed deck into the offline store.
type DeckImporter interface {
	Import(ctx context.Context, deck *importer.DeckImport) (*importer.Result, error)
}

// App holds the collaborators used by CLI commands and the TUI. A nil item
// source hides its mode; a nil Scorer, MiniGame or Verifier disables that
// feature for every session.
type App struct {
	Flashcards    session.ItemSource[domain.Flashcard]
	TranslatePlFr session.ItemSource[domain.TranslationItem]
	TranslateFrPl session.ItemSource[domain.TranslationItem]
	GuessObject   session.ItemSource[domain.GuessObjectItem]
	FillBlank     session.ItemSource[domain.FillBlankItem]

	Scorer   session.Scorer
	MiniGame session.MiniGame
	Verifier session.Verifier
	Stats    StatsSource
	Board    *session.Scoreboard
	Importer DeckImporter

	// SeedBoard, when set, builds Board the first time a command needs the
	// scoreboard. Commands that never show totals do not call it.
	SeedBoard func(ctx context.Context) *session.Scoreboard

	Session session.Config
	Logger  *slog.Logger
	Offline bool

	// Configure is called once before any command runs, with the parsed
	// global flags, to fill in the collaborators above.
	Configure func(GlobalOptions) error

	IsInteractive func() bool

	// RunProgram runs the TUI. Tests replace it; nil uses a bubbletea program
	// on the command's streams.
	RunProgram func(m tea.Model, in io.Reader, out io.Writer) error
}

// GlobalOptions are the persistent flags of the root command.
type GlobalOptions struct {
	ConfigPath string
	Offline    bool
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

func (a *App) board() *session.Scoreboard {
	if a.Board == nil && a.SeedBoard != nil {
		a.Board = a.SeedBoard(context.Background())
	}
	if a.Board == nil {
		a.Board = session.NewScoreboard(0, 0)
	}
	return a.Board
}

func (a *App) sessionConfig() session.Config {
	if a.Session == (session.Config{}) {
		return session.DefaultConfig()
	}
	return a.Session
}

// studyModes returns a binding for every mode that has an item source, in
// menu order.
func (a *App) studyModes() []studyMode {
	var out []studyMode
	add := func(m studyMode, ok bool) {
		if ok {
			out = append(out, m)
		}
	}
	add(bind(a, modes.Flashcards(), a.Flashcards), a.Flashcards != nil)
	add(bind(a, modes.TranslatePlToFr(), a.TranslatePlFr), a.TranslatePlFr != nil)
	add(bind(a, modes.TranslateFrToPl(), a.TranslateFrPl), a.TranslateFrPl != nil)
	add(bind(a, modes.GuessObject(), a.GuessObject), a.GuessObject != nil)
	add(bind(a, modes.FillBlank(), a.FillBlank), a.FillBlank != nil)
	return out
}

// studyMode resolves a mode by its path segment.
func (a *App) studyMode(name string) (studyMode, error) {
	m, ok := domain.ParseMode(name)
	if !ok {
		return nil, fmt.Errorf("unknown mode %q (want one of %s)", name, modeNames())
	}
	for _, sm := range a.studyModes() {
		if sm.Mode() == m {
			return sm, nil
		}
	}
	return nil, fmt.Errorf("mode %q is not available", name)
}

func modeNames() string {
	s := ""
	for i, m := range domain.AllModes {
		if i > 0 {
			s += ", "
		}
		s += string(m)
	}
	return s
}
