package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.wantLen)

			token2, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	a := FingerprintToken("session-token")
	require.Equal(t, a, FingerprintToken("session-token"), "fingerprint must be deterministic")
	require.NotEqual(t, a, FingerprintToken("session-token2"))
	require.Len(t, a, 43)
}

func TestTokensEqual(t *testing.T) {
	require.True(t, TokensEqual("abc", "abc"))
	require.False(t, TokensEqual("abc", "abd"))
	require.False(t, TokensEqual("abc", "abcd"))
	require.False(t, TokensEqual("", ""))
}
