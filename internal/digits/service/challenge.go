package service

import (
	"fmt"
	"slices"

	"github.com/aussiebroadwan/digits/pkg/cryptox"
)

const (
	challengeSize        = 3
	securityStringLength = 40
)

// newChallenge picks challengeSize distinct 1-based positions in [1, n],
// drawing the whole set again whenever two positions collide, and returns
// them ascending.
func newChallenge(n int) ([]int, error) {
	if n < challengeSize {
		return nil, fmt.Errorf("cannot draw %d distinct positions from %d", challengeSize, n)
	}

	positions := make([]int, challengeSize)
	for {
		for i := range positions {
			v, err := cryptox.RandomInt(n)
			if err != nil {
				return nil, err
			}
			positions[i] = v + 1
		}

		slices.Sort(positions)
		if len(slices.Compact(slices.Clone(positions))) == challengeSize {
			return positions, nil
		}
	}
}

// matchChallenge compares answers against the secret at each position. It
// returns ErrInvalidPosition when a position falls outside the secret.
func matchChallenge(secret string, positions []int, answers []string) (bool, error) {
	expected := make([]string, len(positions))
	for i, pos := range positions {
		if pos < 1 || pos > len(secret) {
			return false, ErrInvalidPosition
		}
		expected[i] = secret[pos-1 : pos]
	}
	return slices.Equal(expected, answers), nil
}
