package domain

import "time"

// StartInput is the form posted to begin displaying a number pair.
type StartInput struct {
	UserNumber string
}

// Display is what the caller shows while the commit delay runs.
type Display struct {
	UserNumber    string
	RandomNumber  string
	SignedPayload string
	CommitURL     string
	CommitDelay   time.Duration
}

// RevealChallenge is the outcome of asking to reveal an entry. Either the
// entry was already revealed, or Positions holds the characters to supply.
type RevealChallenge struct {
	EntryID         string
	AlreadyRevealed bool
	Positions       []int
	Entry           Entry // only set when AlreadyRevealed
}

// VerifyInput carries one answer per challenge position, in position order.
type VerifyInput struct {
	Chars []string
}

// VerifyResult is either a revealed entry or a re-offer of the same positions.
type VerifyResult struct {
	Revealed  bool
	Entry     Entry
	Positions []int
}
