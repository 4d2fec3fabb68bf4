package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// modeProgressMsg carries the learned/total counts shown next to each mode.
type modeProgressMsg struct {
	counts map[domain.ExerciseMode]domain.ModeCount
}

// modeMenuView is the home screen: one entry per available exercise mode
// followed by the statistics dashboard.
type modeMenuView struct {
	state  *SharedState
	modes  []studyMode
	counts map[domain.ExerciseMode]domain.ModeCount
	cursor int
}

func newModeMenuView(state *SharedState) *modeMenuView {
	return &modeMenuView{state: state, modes: state.App.studyModes()}
}

func (v *modeMenuView) ID() ViewID    { return ViewModeMenu }
func (v *modeMenuView) Title() string { return "" }

func (v *modeMenuView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
	}
}

func (v *modeMenuView) Init() tea.Cmd {
	return v.loadProgress()
}

func (v *modeMenuView) loadProgress() tea.Cmd {
	modes := v.modes
	return func() tea.Msg {
		counts := make(map[domain.ExerciseMode]domain.ModeCount, len(modes))
		for _, sm := range modes {
			groups, err := sm.Groups(context.Background())
			if err != nil {
				continue
			}
			var c domain.ModeCount
			for _, g := range groups {
				c.Total += g.TotalItems
				c.Learned += g.LearnedItems
			}
			counts[sm.Mode()] = c
		}
		return modeProgressMsg{counts: counts}
	}
}

// entries is the number of menu lines: every mode plus the dashboard.
func (v *modeMenuView) entries() int { return len(v.modes) + 1 }

func (v *modeMenuView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case modeProgressMsg:
		v.counts = msg.counts
		return v, nil

	case refreshViewMsg:
		return v, v.loadProgress()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < v.entries()-1 {
				v.cursor++
			}
		case "s":
			return v, pushView(newDashboardView(v.state))
		case "enter":
			if v.cursor == len(v.modes) {
				return v, pushView(newDashboardView(v.state))
			}
			return v, pushView(v.modes[v.cursor].newStudyView(v.state, nil))
		}
	}
	return v, nil
}

func (v *modeMenuView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if len(v.modes) == 0 {
		b.WriteString("  " + formatter.Dim("No exercise modes are configured.") + "\n\n")
	}
	for i, sm := range v.modes {
		line := fmt.Sprintf("%-20s", sm.Mode().Label())
		if c, ok := v.counts[sm.Mode()]; ok {
			line += formatter.Dim(fmt.Sprintf("  %d/%d learned", c.Learned, c.Total))
		}
		if sm.AIAvailable() {
			line += "  " + formatter.StyleBlue.Render("AI")
		}
		b.WriteString(v.menuLine(i, line))
	}
	b.WriteString("\n")
	b.WriteString(v.menuLine(len(v.modes), "Statistics & badges"))
	return b.String()
}

func (v *modeMenuView) menuLine(i int, text string) string {
	if i == v.cursor {
		return "  " + formatter.StyleHeader.Render("▸ ") + formatter.Bold(text) + "\n"
	}
	return "    " + text + "\n"
}
