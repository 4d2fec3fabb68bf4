package session

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alexanderramin/fiszki/internal/domain"
)

// GuessRow is one checked word-guess attempt.
type GuessRow struct {
	Guess    string
	Verdicts []domain.Verdict
}

// Solved reports whether every letter was in the right place.
func (r GuessRow) Solved() bool {
	if len(r.Verdicts) == 0 {
		return false
	}
	for _, v := range r.Verdicts {
		if v != domain.VerdictCorrect {
			return false
		}
	}
	return true
}

// Game is a read-only view of an open mini-game.
type Game struct {
	Length  int
	MaxRows int
	Rows    []GuessRow
}

// RowsLeft is how many guesses remain.
func (g Game) RowsLeft() int {
	return g.MaxRows - len(g.Rows)
}

// GuessResult is returned for every accepted row.
type GuessResult struct {
	Row      GuessRow
	Game     Game
	Finished bool
	Won      bool
	Bonus    int
	Resume   Resume
}

type game struct {
	target  string
	length  int
	maxRows int
	rows    []GuessRow
}

func newGame(p Puzzle, cfg Config) *game {
	length := p.Length
	if length <= 0 {
		length = cfg.WordLength
	}
	if length <= 0 {
		length = DefaultConfig().WordLength
	}
	rows := cfg.MaxGuessRows
	if rows <= 0 {
		rows = DefaultConfig().MaxGuessRows
	}
	return &game{target: p.Target, length: length, maxRows: rows}
}

// normalizeGuess uppercases a guess and checks it is exactly length letters.
func (g *game) normalizeGuess(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if n := utf8.RuneCountInString(s); n != g.length {
		return "", fmt.Errorf("%w: need %d letters, got %d", ErrInvalidGuess, g.length, n)
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("%w: %q is not a letter", ErrInvalidGuess, r)
		}
	}
	return s, nil
}

func (g *game) accept(guess string, verdicts []domain.Verdict) (GuessRow, error) {
	if len(verdicts) != utf8.RuneCountInString(guess) {
		return GuessRow{}, fmt.Errorf("%w: %d verdicts for %d letters", ErrBadVerdicts, len(verdicts), utf8.RuneCountInString(guess))
	}
	for _, v := range verdicts {
		if !v.Valid() {
			return GuessRow{}, fmt.Errorf("%w: unknown verdict %q", ErrBadVerdicts, v)
		}
	}
	row := GuessRow{Guess: guess, Verdicts: append([]domain.Verdict(nil), verdicts...)}
	g.rows = append(g.rows, row)
	return row, nil
}

func (g *game) won() bool {
	return len(g.rows) > 0 && g.rows[len(g.rows)-1].Solved()
}

func (g *game) exhausted() bool {
	return len(g.rows) >= g.maxRows
}

func (g *game) view() Game {
	rows := make([]GuessRow, len(g.rows))
	copy(rows, g.rows)
	return Game{Length: g.length, MaxRows: g.maxRows, Rows: rows}
}
