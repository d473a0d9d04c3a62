package service

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewChallenge(t *testing.T) {
	seen := make(map[int]bool)
	for range 500 {
		positions, err := newChallenge(securityStringLength)
		require.NoError(t, err)
		require.Len(t, positions, challengeSize)
		require.True(t, slices.IsSorted(positions))

		for i, p := range positions {
			require.GreaterOrEqual(t, p, 1)
			require.LessOrEqual(t, p, securityStringLength)
			if i > 0 {
				require.NotEqual(t, positions[i-1], p, "positions must be distinct")
			}
			seen[p] = true
		}
	}
	require.Len(t, seen, securityStringLength, "every position should come up")
}

func TestNewChallengeSmallRange(t *testing.T) {
	// With only three slots every draw must end up as 1,2,3.
	for range 50 {
		positions, err := newChallenge(3)
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, positions)
	}
}

func TestNewChallengeRangeTooSmall(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 2} {
		_, err := newChallenge(n)
		require.Error(t, err, "n=%d", n)
	}
}

func TestMatchChallenge(t *testing.T) {
	secret := "abcdefghijABCDEFGHIJ0123456789klmnopqrst"

	tests := []struct {
		name      string
		positions []int
		answers   []string
		want      bool
		wantErr   error
	}{
		{"match", []int{1, 11, 40}, []string{"a", "A", "t"}, true, nil},
		{"case sensitive", []int{1, 11, 40}, []string{"a", "a", "t"}, false, nil},
		{"wrong order", []int{1, 11, 40}, []string{"t", "A", "a"}, false, nil},
		{"position zero", []int{0, 11, 40}, []string{"a", "A", "t"}, false, ErrInvalidPosition},
		{"past the end", []int{1, 11, 41}, []string{"a", "A", "t"}, false, ErrInvalidPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchChallenge(secret, tt.positions, tt.answers)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
