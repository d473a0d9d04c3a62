package digitsdk

import "time"

// Status values reported in response bodies.
const (
	StatusOK              = "ok"
	StatusChallenge       = "challenge"
	StatusAlreadyRevealed = "already_revealed"
	StatusRevealed        = "revealed"
	StatusMismatch        = "mismatch"
	StatusLoggedOut       = "logged_out"
	StatusPasswordChanged = "password_changed"
)

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}

// IndexResponse describes the number form and hands out the CSRF token.
type IndexResponse struct {
	Username  string   `json:"username"`
	Fields    []string `json:"fields"`
	StartURL  string   `json:"start_url"`
	CSRFToken string   `json:"csrf_token"`
}

// StartResponse is shown to the user while the commit delay runs.
type StartResponse struct {
	UserNumber         string `json:"user_number"`
	RandomNumber       string `json:"random_number"`
	SignedPayload      string `json:"signed_payload"`
	CommitURL          string `json:"commit_url"`
	CommitDelaySeconds int    `json:"commit_delay_seconds"`
}

type CommitResponse struct {
	Status  string `json:"status"`
	EntryID string `json:"entry_id"`
}

// EntrySummary is one row of the list. The numbers are only shown once an
// entry has been revealed through a challenge.
type EntrySummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Revealed  bool      `json:"revealed"`
}

type ListResponse struct {
	Entries []EntrySummary `json:"entries"`
}

// RevealedEntry carries both numbers of an entry that passed a challenge.
type RevealedEntry struct {
	ID           string    `json:"id"`
	UserNumber   string    `json:"user_number"`
	RandomNumber string    `json:"random_number"`
	CreatedAt    time.Time `json:"created_at"`
}

// RevealResponse is either StatusChallenge with Positions to answer, or
// StatusAlreadyRevealed with the entry.
type RevealResponse struct {
	Status    string         `json:"status"`
	EntryID   string         `json:"entry_id"`
	Positions []int          `json:"positions,omitempty"`
	Entry     *RevealedEntry `json:"entry,omitempty"`
}

// VerifyResponse is StatusRevealed with the entry, or StatusMismatch with the
// same positions offered again.
type VerifyResponse struct {
	Status    string         `json:"status"`
	EntryID   string         `json:"entry_id"`
	Positions []int          `json:"positions,omitempty"`
	Entry     *RevealedEntry `json:"entry,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Status   string `json:"status"`
	Username string `json:"username"`
	Next     string `json:"next,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
