package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		charset string
	}{
		{"five digits", 5, Digits},
		{"security string", 40, Alphanumeric},
		{"empty", 0, Digits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := RandomString(tt.length, tt.charset)
			require.NoError(t, err)
			require.Len(t, s, tt.length)
			for _, r := range s {
				require.True(t, strings.ContainsRune(tt.charset, r), "unexpected character %q", r)
			}
		})
	}
}

func TestRandomString_InvalidArgs(t *testing.T) {
	_, err := RandomString(-1, Digits)
	require.Error(t, err)

	_, err = RandomString(5, "")
	require.Error(t, err)

	require.Panics(t, func() { MustRandomString(-1, Digits) })
}

func TestRandomInt(t *testing.T) {
	seen := make(map[int]bool)
	for range 500 {
		n, err := RandomInt(4)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 4)
		seen[n] = true
	}
	require.Len(t, seen, 4, "500 draws should hit every value in [0,4)")

	_, err := RandomInt(0)
	require.Error(t, err)
}
