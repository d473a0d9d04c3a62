package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CommitAudience scopes commit tokens so a token signed for another purpose
// with the same key is never accepted.
const CommitAudience = "digits-commit"

// DefaultCommitTTL is how long a commit token stays valid after issuance.
const DefaultCommitTTL = 30 * time.Second

// numberLength is the exact length of both numbers carried by a commit token.
const numberLength = 5

var errBadPayload = errors.New("jwtx: commit payload must carry two 5 digit numbers")

// Commit tokens live for 30 seconds, so whole-second NumericDates would cut
// up to a second off their lifetime.
func init() {
	jwt.TimePrecision = time.Millisecond
}

// ceilMillisecond rounds t up to the next whole millisecond.
func ceilMillisecond(t time.Time) time.Time {
	r := t.Truncate(time.Millisecond)
	if r.Before(t) {
		r = r.Add(time.Millisecond)
	}
	return r
}

// CommitClaims carries the pending pair between the display and commit steps.
type CommitClaims struct {
	jwt.RegisteredClaims

	UserNumber   string `json:"user_number"`
	RandomNumber string `json:"random_number"`
}

// NewCommitClaims builds claims issued at now and expiring after ttl. The
// expiry is rounded up so the token is never rejected before ttl has passed.
func NewCommitClaims(userNumber, randomNumber string, ttl time.Duration, now time.Time) CommitClaims {
	return CommitClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{CommitAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: &jwt.NumericDate{Time: ceilMillisecond(now.Add(ttl))},
		},
		UserNumber:   userNumber,
		RandomNumber: randomNumber,
	}
}

// Validate is picked up by the jwt parser after the registered claims pass.
func (c CommitClaims) Validate() error {
	if !isDigits(c.UserNumber, numberLength) || !isDigits(c.RandomNumber, numberLength) {
		return errBadPayload
	}
	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
