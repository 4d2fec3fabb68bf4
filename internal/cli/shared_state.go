package cli

import "github.com/alexanderramin/fiszki/internal/session"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int
}

// Totals is the live account scoreboard shown in the header.
func (s *SharedState) Totals() session.Totals {
	return s.App.board().Totals()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
