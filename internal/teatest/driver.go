// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver stands in for tea.Program: it calls Update directly and runs
// every returned Cmd inline, feeding the resulting messages back until the
// model goes quiet. Cmds that block for longer than the configured timeout
// (cursor blinks, spinner ticks, long tea.Tick delays) are dropped, so
// tests stay deterministic and never sleep.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates Cmds that return right away (store calls
// against in-memory fakes, message factories, 1ms ticks) from timers that
// wait for a human-scale interval.
const DefaultCmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg comes out of a Cmd. The runtime
	// normally swallows it, so models rarely record it themselves.
	Quitting bool

	cmdTimeout time.Duration
	record     bool
	messages   []tea.Msg
}

// Option configures the Driver during construction.
type Option func(*Driver)

// New creates a Driver for model. Call DrainInit afterwards to run the
// model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// WithCmdTimeout changes how long a Cmd may block before it is dropped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.cmdTimeout = timeout }
}

// WithMessageLog keeps every message delivered to Update, readable
// through Messages.
func WithMessageLog() Option {
	return func(d *Driver) { d.record = true }
}

// DrainInit runs the model's Init command and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg)
}

// Messages returns the delivered messages when WithMessageLog is set.
func (d *Driver) Messages() []tea.Msg {
	return append([]tea.Msg(nil), d.messages...)
}

// MessageTypes lists the Go types of the delivered messages, handy for
// asserting on unexported message structs.
func (d *Driver) MessageTypes() []string {
	out := make([]string, len(d.messages))
	for i, msg := range d.messages {
		out[i] = fmt.Sprintf("%T", msg)
	}
	return out
}

// ── Key helpers ──

// SendKey sends a tea.KeyMsg through the model.
func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyEnter})
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressTab() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
}

func (d *Driver) PressSpace() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) PressUp() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyUp})
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyDown})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		if r == ' ' {
			d.PressSpace()
			continue
		}
		d.PressKey(r)
	}
}

// TypeLine types s and presses Enter.
func (d *Driver) TypeLine(s string) {
	d.T.Helper()
	d.Type(s)
	d.PressEnter()
}

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

// ── Draining ──

func (d *Driver) deliver(msg tea.Msg) {
	d.T.Helper()
	if d.record {
		d.messages = append(d.messages, msg)
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := d.exec(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drainCmd(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		if d.record {
			d.messages = append(d.messages, msg)
		}
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	if d.record {
		d.messages = append(d.messages, msg)
	}
	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(next, depth+1)
}

// exec runs cmd on its own goroutine and gives up after the driver's
// timeout. An abandoned goroutine finishes on its own once its timer fires.
func (d *Driver) exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	timer := time.NewTimer(d.cmdTimeout)
	defer timer.Stop()
	select {
	case msg := <-ch:
		return msg
	case <-timer.C:
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor,
// which chain into timer Cmds when handled.
func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
