package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clamp01(pct)
	return fmt.Sprintf("[%s] %3.0f%%", ratioStyle(pct).Render(bar(pct, width)), pct*100)
}

// RenderCounter renders "done/total" followed by a bar in the accent color.
// Session progress is not a quality signal, so it is never colored red.
func RenderCounter(done, total, width int) string {
	pct := 0.0
	if total > 0 {
		pct = clamp01(float64(done) / float64(total))
	}
	return fmt.Sprintf("%s %d/%d", StyleBlue.Render(bar(pct, width)), done, total)
}

func bar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := min(int(pct*float64(width)), width)
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func ratioStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 0.33:
		return StyleRed
	case pct < 0.66:
		return StyleYellow
	default:
		return StyleGreen
	}
}

func clamp01(pct float64) float64 {
	return max(0, min(pct, 1))
}
