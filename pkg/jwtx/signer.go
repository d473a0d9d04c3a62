package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minKeyLength is the shortest HMAC key we accept (256 bits).
const minKeyLength = 32

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrWeakKey      = errors.New("jwtx: signing key too short")
)

// CommitSigner signs and verifies short-lived HS256 commit tokens. It holds
// no state besides the key, so one instance is shared across requests.
type CommitSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewCommitSigner creates a signer using key. A zero ttl means DefaultCommitTTL.
func NewCommitSigner(key []byte, ttl time.Duration) (*CommitSigner, error) {
	if len(key) < minKeyLength {
		return nil, ErrWeakKey
	}
	if ttl <= 0 {
		ttl = DefaultCommitTTL
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &CommitSigner{key: k, ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the time source, mostly for tests.
func (s *CommitSigner) WithClock(now func() time.Time) *CommitSigner {
	s.now = now
	return s
}

// TTL reports the lifetime given to new tokens.
func (s *CommitSigner) TTL() time.Duration { return s.ttl }

// Sign returns a compact JWT carrying both numbers.
func (s *CommitSigner) Sign(userNumber, randomNumber string) (string, error) {
	claims := NewCommitClaims(userNumber, randomNumber, s.ttl, s.now().UTC())
	if err := claims.Validate(); err != nil {
		return "", err
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign commit token: %w", err)
	}
	return token, nil
}

// Verify checks signature, audience, expiry and payload shape. It returns
// ErrExpired for a well-signed token past its lifetime and ErrInvalidToken
// for everything else.
func (s *CommitSigner) Verify(token string) (CommitClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(CommitAudience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)

	var claims CommitClaims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return CommitClaims{}, fmt.Errorf("%w: %w", ErrExpired, err)
	default:
		return CommitClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
}
