package formatter

import (
	"strings"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/session"
)

// RenderGuessRow renders one checked row as colored letter tiles.
func RenderGuessRow(row session.GuessRow) string {
	letters := []rune(row.Guess)
	tiles := make([]string, len(letters))
	for i, r := range letters {
		v := domain.VerdictAbsent
		if i < len(row.Verdicts) {
			v = row.Verdicts[i]
		}
		tiles[i] = VerdictStyle(v).Render(string(r))
	}
	return strings.Join(tiles, " ")
}

// RenderBoard renders every checked row of g followed by placeholder rows
// for the guesses left.
func RenderBoard(g session.Game) string {
	lines := make([]string, 0, g.MaxRows)
	for _, row := range g.Rows {
		lines = append(lines, RenderGuessRow(row))
	}
	empty := Dim(strings.TrimSpace(strings.Repeat(" · ", g.Length)))
	for range g.RowsLeft() {
		lines = append(lines, empty)
	}
	return strings.Join(lines, "\n")
}
