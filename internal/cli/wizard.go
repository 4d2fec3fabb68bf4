package cli

import (
	"fmt"

	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// fiszkiHuhTheme returns a custom huh theme using the formatter palette.
func fiszkiHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[✓] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// groupSelectForm asks which groups to study and whether learned items are
// included. Every group starts selected.
func groupSelectForm(groups []domain.StudyGroup, selected *[]string, includeLearned *bool) *huh.Form {
	options := make([]huh.Option[string], 0, len(groups))
	for _, g := range groups {
		label := fmt.Sprintf("%s  %s", g.Name, formatter.Dim(fmt.Sprintf("%d/%d learned", g.LearnedItems, g.TotalItems)))
		options = append(options, huh.NewOption(label, g.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which groups?").
				Description("space toggles, enter confirms").
				Value(selected).
				Options(options...).
				Height(min(len(options)+2, 12)),
			huh.NewConfirm().
				Title("Include learned items?").
				Affirmative("Yes").
				Negative("No").
				Value(includeLearned),
		),
	).WithTheme(fiszkiHuhTheme()).WithShowHelp(false)
}
