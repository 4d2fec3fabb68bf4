package session

import "errors"

var (
	ErrWrongPhase     = errors.New("action not allowed in current phase")
	ErrBusy           = errors.New("previous action still in flight")
	ErrNotTyping      = errors.New("current item already answered")
	ErrNotJudged      = errors.New("current item not answered yet")
	ErrNotWrong       = errors.New("current item is not marked wrong")
	ErrEmptyAnswer    = errors.New("answer is empty")
	ErrMiniGameActive = errors.New("mini-game in progress")
	ErrNoMiniGame     = errors.New("no mini-game in progress")
	ErrInvalidGuess   = errors.New("invalid guess")
	ErrBadVerdicts    = errors.New("verdicts do not match guess")
	ErrAIUnavailable  = errors.New("AI verification not available for this mode")
	ErrAIAlreadyUsed  = errors.New("AI verification already used for this item")
	ErrNoItems        = errors.New("no items to study")
	ErrNoMistakes     = errors.New("no mistakes to repeat")
	ErrSessionClosed  = errors.New("session was closed while waiting")
)
