package session

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Config holds the UX parameters of a session. None of them affect scoring.
type Config struct {
	Limit           int
	Level           string
	CorrectDelay    time.Duration
	CompletionDelay time.Duration
	MiniGameBonus   int
	MaxGuessRows    int
	WordLength      int
}

func DefaultConfig() Config {
	return Config{
		Limit:           50,
		Level:           "A1",
		CorrectDelay:    1200 * time.Millisecond,
		CompletionDelay: 1500 * time.Millisecond,
		MiniGameBonus:   100,
		MaxGuessRows:    6,
		WordLength:      5,
	}
}

type options struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
	detach func(func())
	newID  func() string
}

type Option func(*options)

func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock replaces time.Now for timestamps in session stats.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithDetach replaces how fire-and-forget progress reports are run. The
// default starts a goroutine; tests run them inline.
func WithDetach(run func(func())) Option {
	return func(o *options) { o.detach = run }
}

// WithRunIDs replaces the generator of per-run log identifiers.
func WithRunIDs(next func() string) Option {
	return func(o *options) { o.newID = next }
}

func defaultOptions() options {
	return options{
		cfg:    DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		detach: func(f func()) { go f() },
		newID:  uuid.NewString,
	}
}
