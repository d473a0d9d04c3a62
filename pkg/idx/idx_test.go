package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/digits/pkg/idx"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNewIsCanonicalULID(t *testing.T) {
	id := idx.New()
	require.Len(t, id.String(), ulid.EncodedSize)

	_, err := ulid.ParseStrict(id.String())
	require.NoError(t, err)
}

func TestNewAtSortsWithinSameMillisecond(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	a := idx.NewAt(at)
	b := idx.NewAt(at)

	require.Less(t, a.String(), b.String())

	u, err := ulid.ParseStrict(b.String())
	require.NoError(t, err)
	require.Equal(t, at, ulid.Time(u.Time()).UTC())
}
