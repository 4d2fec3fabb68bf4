package api

import "time"

// Call identifies one collaborator endpoint for timeouts and observability.
type Call string

const (
	CallGroups       Call = "groups"
	CallSession      Call = "session"
	CallProgress     Call = "progress"
	CallScore        Call = "score"
	CallWordleStart  Call = "wordle_start"
	CallWordleCheck  Call = "wordle_check"
	CallVerify       Call = "verify"
	CallProfileStats Call = "profile_stats"
	CallDashboard    Call = "dashboard"
)

// Config holds the transport settings of the backend client.
type Config struct {
	BaseURL string
	// Token is sent verbatim as a bearer token when set.
	Token string
	// Timeout bounds every call; zero disables it.
	Timeout time.Duration
	// Timeouts overrides Timeout per call when > 0.
	Timeouts map[Call]time.Duration
}

// DefaultConfig returns a Config pointed at a local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Timeout: 20 * time.Second,
		Timeouts: map[Call]time.Duration{
			CallVerify: 45 * time.Second,
		},
	}
}

// CallTimeout returns the effective timeout for a call.
func (c Config) CallTimeout(call Call) time.Duration {
	if d, ok := c.Timeouts[call]; ok && d > 0 {
		return d
	}
	return c.Timeout
}
