package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// viewStack holds the open views, the mode menu at the bottom.
type viewStack []View

func (s viewStack) top() View {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// pop drops the top view but never the menu.
func (s viewStack) pop() viewStack {
	if len(s) <= 1 {
		return s
	}
	return s[:len(s)-1]
}

// appModel is the root bubbletea Model. It draws the breadcrumb and the live
// scoreboard above whichever view is on top of the stack.
type appModel struct {
	state     *SharedState
	viewStack viewStack
	quitting  bool
}

// newAppModel opens the mode menu, with first (when given) already pushed
// over it so esc still leads back to the menu.
func newAppModel(app *App, first func(*SharedState) View) appModel {
	state := &SharedState{App: app}
	stack := viewStack{newModeMenuView(state)}
	if first != nil {
		stack = append(stack, first(state))
	}
	return appModel{state: state, viewStack: stack}
}

func (m appModel) activeView() View { return m.viewStack.top() }

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, v := range m.viewStack {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.onKey(msg)
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()
	case popViewMsg:
		m.viewStack = m.viewStack.pop()
		return m, nil
	case refreshViewMsg:
		// Every view sees it, so the menu under a session reloads its counts.
		cmds := make([]tea.Cmd, len(m.viewStack))
		for i := range m.viewStack {
			cmds[i] = m.updateAt(i, msg)
		}
		return m, tea.Batch(cmds...)
	}
	return m, m.updateAt(len(m.viewStack)-1, msg)
}

// updateAt delivers msg to the view at position i and stores the result.
func (m appModel) updateAt(i int, msg tea.Msg) tea.Cmd {
	if i < 0 || i >= len(m.viewStack) {
		return nil
	}
	next, cmd := m.viewStack[i].Update(msg)
	m.viewStack[i] = next.(View)
	return cmd
}

func (m appModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	top := len(m.viewStack) - 1
	captured := top >= 0 && viewCapturesInput(m.viewStack[top])

	switch {
	case msg.Type == tea.KeyCtrlC, !captured && msg.String() == "q":
		m.quitting = true
		return m, tea.Quit
	case !captured && msg.Type == tea.KeyEsc:
		m.viewStack = m.viewStack.pop()
		return m, nil
	}
	return m, m.updateAt(top, msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	if v := m.activeView(); v != nil {
		b.WriteString(v.View())
		b.WriteByte('\n')
	}
	b.WriteString(m.footer())

	// The alt-screen renderer diffs by line, so short frames leave stale
	// rows behind unless padded to the terminal height.
	out := b.String()
	if rows := strings.Count(out, "\n") + 1; rows < m.state.Height {
		out += strings.Repeat("\n", m.state.Height-rows)
	}
	return out
}

func (m appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

func (m appModel) header() string {
	left := formatter.StylePurple.Render("fiszki")
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			left += formatter.Dim(" › " + t)
		}
	}

	totals := m.state.Totals()
	right := formatter.StyleYellow.Render(fmt.Sprintf("★ %d", totals.TotalPoints))
	if totals.Combo > 0 {
		right += "  " + formatter.StyleHeader.Render(fmt.Sprintf("×%d", totals.Combo))
	}
	if m.state.App.Offline {
		right += "  " + formatter.Dim("[offline]")
	}

	gap := m.state.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right + "\n" + m.rule()
}

func (m appModel) footer() string {
	v := m.activeView()
	if v == nil {
		return m.rule()
	}
	var hints []string
	for _, b := range v.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	if !viewCapturesInput(v) {
		if len(m.viewStack) > 1 {
			hints = append(hints, "esc: back")
		}
		hints = append(hints, "q: quit")
	}
	return m.rule() + "\n" + formatter.Dim(strings.Join(hints, "  "))
}
