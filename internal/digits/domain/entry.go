package domain

import "time"

// Entry is a stored pair of numbers guarded by a random security string.
type Entry struct {
	ID                 string // random UUID
	UserNumber         string // 5 digits, user supplied
	RandomNumber       string // 5 digits, server generated
	SecurityString     string // 40 alphanumerics, immutable
	CreatedAt          time.Time
	Revealed           bool       // flips to true once, never back
	ChallengeIndices   []int      // 1-based positions into SecurityString, empty when none pending
	ChallengeCreatedAt *time.Time // nil when no challenge is pending
}

// HasChallenge reports whether a reveal challenge is pending.
func (e Entry) HasChallenge() bool {
	return len(e.ChallengeIndices) > 0
}

// EntryUpdate lists the mutable fields of an entry. Nil fields are left alone.
type EntryUpdate struct {
	Revealed  *bool
	Challenge *ChallengeState
}

// ChallengeState replaces the pending challenge. The zero value clears it.
type ChallengeState struct {
	Indices   []int
	CreatedAt *time.Time
}
