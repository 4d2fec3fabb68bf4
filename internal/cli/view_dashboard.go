package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/fiszki/internal/badge"
	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type dashboardLoadedMsg struct {
	data dashboard
	err  error
}

// dashboardView shows account statistics and badges.
type dashboardView struct {
	state   *SharedState
	data    *dashboard
	loading bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, loading: true}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Statistics" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))}
}

func (v *dashboardView) Init() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		d, err := loadDashboard(context.Background(), app)
		return dashboardLoadedMsg{data: d, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.data = &msg.data
		}
	case refreshViewMsg:
		return v, v.Init()
	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loading = true
			return v, v.Init()
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	case v.loading || v.data == nil:
		b.WriteString("  " + formatter.Dim("Loading statistics...") + "\n")
	default:
		s := v.data.Stats
		b.WriteString(indent(formatter.FormatDashboard(s, badge.Upcoming(s, badge.DefaultUpcomingLimit), v.data.GroupCounts())))
		b.WriteString("\n")
	}
	return b.String()
}
