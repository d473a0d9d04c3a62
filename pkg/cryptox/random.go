package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Character sets for random string generation.
const (
	Digits       = "0123456789"
	Alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandomInt returns a uniform random integer in [0, n) from crypto/rand.
func RandomInt(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random bound must be positive, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random number: %w", err)
	}
	return int(v.Int64()), nil
}

// RandomString builds a string of the given length with every character drawn
// uniformly from charset.
func RandomString(length int, charset string) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("random string length must not be negative, got %d", length)
	}
	if charset == "" {
		return "", fmt.Errorf("random string charset must not be empty")
	}

	out := make([]byte, length)
	for i := range out {
		n, err := RandomInt(len(charset))
		if err != nil {
			return "", err
		}
		out[i] = charset[n]
	}
	return string(out), nil
}

// MustRandomString is like RandomString but panics on error.
func MustRandomString(length int, charset string) string {
	s, err := RandomString(length, charset)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate random string: %v", err))
	}
	return s
}
