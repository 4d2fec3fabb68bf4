package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fiszki/internal/badge"
	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorBg     = lipgloss.Color("#282828")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorSilver = lipgloss.Color("#d5c4a1")
	ColorAqua   = lipgloss.Color("#689d6a")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TierStyle colors a badge by its tier.
func TierStyle(t badge.Tier) lipgloss.Style {
	switch t {
	case badge.TierBronze:
		return StyleHeader
	case badge.TierSilver:
		return lipgloss.NewStyle().Foreground(ColorSilver)
	case badge.TierGold:
		return StyleYellow
	case badge.TierDiamond:
		return StyleBlue
	default:
		return StyleDim
	}
}

// VerdictStyle is the tile style of one word-guess letter.
func VerdictStyle(v domain.Verdict) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(ColorBg)
	switch v {
	case domain.VerdictCorrect:
		return base.Background(ColorGreen)
	case domain.VerdictPresent:
		return base.Background(ColorYellow)
	default:
		return base.Background(ColorDim)
	}
}

// Signed renders a points delta with an explicit sign, green when positive
// and red when negative.
func Signed(n int) string {
	switch {
	case n > 0:
		return StyleGreen.Render(fmt.Sprintf("+%d", n))
	case n < 0:
		return StyleRed.Render(fmt.Sprintf("%d", n))
	default:
		return StyleDim.Render("0")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
