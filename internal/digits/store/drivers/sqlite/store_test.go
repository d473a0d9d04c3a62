package sqlite_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
	"github.com/aussiebroadwan/digits/internal/digits/store"
	"github.com/aussiebroadwan/digits/internal/digits/store/drivers/sqlite"
	"github.com/aussiebroadwan/digits/pkg/idx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newEntry(createdAt time.Time) domain.Entry {
	return domain.Entry{
		ID:             uuid.NewString(),
		UserNumber:     "12345",
		RandomNumber:   "08271",
		SecurityString: strings.Repeat("aB3", 13) + "z",
		CreatedAt:      createdAt,
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestEntriesCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	e := newEntry(time.Now().UTC())
	require.NoError(t, st.Entries().CreateEntry(ctx, e))

	got, err := st.Entries().GetEntry(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, e.UserNumber, got.UserNumber)
	require.Equal(t, e.RandomNumber, got.RandomNumber)
	require.Equal(t, e.SecurityString, got.SecurityString)
	require.WithinDuration(t, e.CreatedAt, got.CreatedAt, time.Microsecond)
	require.False(t, got.Revealed)
	require.False(t, got.HasChallenge())
	require.Nil(t, got.ChallengeCreatedAt)

	t.Run("duplicate id", func(t *testing.T) {
		require.ErrorIs(t, st.Entries().CreateEntry(ctx, e), store.ErrAlreadyExists)
	})

	t.Run("set and clear challenge", func(t *testing.T) {
		at := time.Now().UTC()
		require.NoError(t, st.Entries().UpdateEntryFields(ctx, e.ID, domain.EntryUpdate{
			Challenge: &domain.ChallengeState{Indices: []int{3, 17, 29}, CreatedAt: &at},
		}))

		got, err := st.Entries().GetEntry(ctx, e.ID)
		require.NoError(t, err)
		require.Equal(t, []int{3, 17, 29}, got.ChallengeIndices)
		require.NotNil(t, got.ChallengeCreatedAt)
		require.WithinDuration(t, at, *got.ChallengeCreatedAt, time.Microsecond)

		require.NoError(t, st.Entries().UpdateEntryFields(ctx, e.ID, domain.EntryUpdate{
			Challenge: &domain.ChallengeState{},
		}))
		got, err = st.Entries().GetEntry(ctx, e.ID)
		require.NoError(t, err)
		require.Empty(t, got.ChallengeIndices)
		require.Nil(t, got.ChallengeCreatedAt)
	})

	t.Run("revealed is one way", func(t *testing.T) {
		yes, no := true, false
		require.NoError(t, st.Entries().UpdateEntryFields(ctx, e.ID, domain.EntryUpdate{Revealed: &yes}))
		require.Error(t, st.Entries().UpdateEntryFields(ctx, e.ID, domain.EntryUpdate{Revealed: &no}))

		got, err := st.Entries().GetEntry(ctx, e.ID)
		require.NoError(t, err)
		require.True(t, got.Revealed)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Entries().DeleteEntry(ctx, e.ID))
		_, err := st.Entries().GetEntry(ctx, e.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, st.Entries().DeleteEntry(ctx, e.ID), store.ErrNotFound)
	})
}

func TestUpdateUnknownEntry(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	yes := true

	require.ErrorIs(t, st.Entries().UpdateEntryFields(ctx, "missing", domain.EntryUpdate{Revealed: &yes}), store.ErrNotFound)
	require.ErrorIs(t, st.Entries().UpdateEntryFields(ctx, "missing", domain.EntryUpdate{}), store.ErrNotFound)
}

func TestEntriesRejectMalformedNumbers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	bad := newEntry(time.Now())
	bad.UserNumber = "12a45"
	require.Error(t, st.Entries().CreateEntry(ctx, bad))

	bad = newEntry(time.Now())
	bad.SecurityString = "short"
	require.Error(t, st.Entries().CreateEntry(ctx, bad))
}

func TestListRecentEntries(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	base := time.Unix(1700000000, 0).UTC()
	for i := range 55 {
		require.NoError(t, st.Entries().CreateEntry(ctx, newEntry(base.Add(time.Duration(i)*time.Second))))
	}

	got, err := st.Entries().ListRecentEntries(ctx, 50)
	require.NoError(t, err)
	require.Len(t, got, 50)
	require.Equal(t, base.Add(54*time.Second), got[0].CreatedAt)
	for i := 1; i < len(got); i++ {
		require.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt), "entries must be newest first")
	}

	none, err := st.Entries().ListRecentEntries(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestUsersAndSessions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	now := time.Now().UTC()

	u := domain.User{ID: idx.New().String(), Username: "alice", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Users().CreateUser(ctx, u))

	dup := u
	dup.ID = idx.New().String()
	require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	byName, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	require.NoError(t, st.Users().UpdatePasswordHash(ctx, u.ID, "hash2"))
	byID, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "hash2", byID.PasswordHash)

	_, err = st.Users().GetUserByUsername(ctx, "bob")
	require.ErrorIs(t, err, store.ErrNotFound)

	for i := range 3 {
		require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
			ID:        idx.New().String(),
			UserID:    u.ID,
			TokenHash: fmt.Sprintf("hash-%d", i),
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}))
	}

	s, err := st.Sessions().GetSessionByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, s.UserID)
	require.WithinDuration(t, now.Add(time.Hour), s.ExpiresAt, time.Microsecond)

	require.NoError(t, st.Sessions().DeleteUserSessionsExcept(ctx, u.ID, "hash-1"))
	_, err = st.Sessions().GetSessionByTokenHash(ctx, "hash-0")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Sessions().GetSessionByTokenHash(ctx, "hash-1")
	require.NoError(t, err)

	require.NoError(t, st.Sessions().DeleteSession(ctx, "hash-1"))
	require.NoError(t, st.Sessions().DeleteSession(ctx, "hash-1"), "delete is idempotent")
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	e := newEntry(time.Now())

	boom := fmt.Errorf("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Entries().CreateEntry(ctx, e))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Entries().GetEntry(ctx, e.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Entries().CreateEntry(ctx, e)
	}))
	_, err = st.Entries().GetEntry(ctx, e.ID)
	require.NoError(t, err)
}
