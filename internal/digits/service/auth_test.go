package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/digits/internal/digits/domain"
	redisstore "github.com/aussiebroadwan/digits/internal/digits/store/drivers/redis"
	"github.com/aussiebroadwan/digits/pkg/cryptox"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse battery"

func newAuthService(t *testing.T) (*AuthService, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Now().UTC()}
	return &AuthService{
		Store:      newTestStore(t),
		SessionTTL: time.Hour,
		Now:        clock.Now,
	}, clock
}

func register(t *testing.T, s *AuthService, username string) domain.User {
	t.Helper()
	u, err := s.Register(context.Background(), domain.RegisterInput{
		Username:  username,
		Password1: testPassword,
		Password2: testPassword,
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(t)

	u := register(t, s, "alice")
	require.NotEmpty(t, u.ID)
	require.Equal(t, "alice", u.Username)
	require.NotContains(t, u.PasswordHash, testPassword)
	require.NoError(t, cryptox.VerifyPassword(testPassword, u.PasswordHash))

	_, err := s.Register(ctx, domain.RegisterInput{Username: "alice", Password1: testPassword, Password2: testPassword})
	require.ErrorIs(t, err, ErrValidation)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "username", ve.Field)

	_, err = s.Register(ctx, domain.RegisterInput{Username: "bob", Password1: "12345678", Password2: "12345678"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestLoginAuthenticateLogout(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(t)
	u := register(t, s, "alice")

	_, _, err := s.Login(ctx, "alice", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.Login(ctx, "nobody", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	token, sess, err := s.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, u.ID, sess.UserID)
	require.Equal(t, cryptox.FingerprintToken(token), sess.TokenHash)
	require.NotEqual(t, token, sess.TokenHash)

	actor, err := s.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, actor.UserID)
	require.Equal(t, "alice", actor.Username)
	require.Equal(t, sess.ID, actor.SessionID)

	_, err = s.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = s.Authenticate(ctx, "bogus")
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, s.Logout(ctx, token))
	require.NoError(t, s.Logout(ctx, token))
	require.NoError(t, s.Logout(ctx, ""))

	_, err = s.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestExpiredSessionIsRejected(t *testing.T) {
	ctx := context.Background()
	s, clock := newAuthService(t)
	register(t, s, "alice")

	token, _, err := s.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = s.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	require.Error(t, err, "expired session should be deleted")
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(t)
	register(t, s, "alice")

	current, _, err := s.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	other, _, err := s.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	actor, err := s.Authenticate(ctx, current)
	require.NoError(t, err)

	const newPassword = "new secret phrase"

	err = s.ChangePassword(ctx, actor, domain.ChangePasswordInput{OldPassword: "nope", NewPassword1: newPassword, NewPassword2: newPassword})
	require.ErrorIs(t, err, ErrValidation)

	err = s.ChangePassword(ctx, actor, domain.ChangePasswordInput{OldPassword: testPassword, NewPassword1: newPassword, NewPassword2: "different"})
	require.ErrorIs(t, err, ErrValidation)

	// A failed change leaves every session alone.
	_, err = s.Authenticate(ctx, other)
	require.NoError(t, err)

	require.NoError(t, s.ChangePassword(ctx, actor, domain.ChangePasswordInput{
		OldPassword:  testPassword,
		NewPassword1: newPassword,
		NewPassword2: newPassword,
	}))

	_, err = s.Authenticate(ctx, current)
	require.NoError(t, err, "the session that changed the password stays valid")
	_, err = s.Authenticate(ctx, other)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = s.Login(ctx, "alice", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.Login(ctx, "alice", newPassword)
	require.NoError(t, err)

	require.ErrorIs(t, s.ChangePassword(ctx, domain.Actor{}, domain.ChangePasswordInput{}), ErrUnauthorized)
}

func TestChangePasswordWithRedisSessions(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s.Sessions = redisstore.NewSessions(rdb, "test")
	// miniredis expires keys against real time, keep the service clock real too.
	s.Now = nil

	register(t, s, "alice")
	current, _, err := s.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	other, _, err := s.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	actor, err := s.Authenticate(ctx, current)
	require.NoError(t, err)

	const newPassword = "new secret phrase"
	require.NoError(t, s.ChangePassword(ctx, actor, domain.ChangePasswordInput{
		OldPassword:  testPassword,
		NewPassword1: newPassword,
		NewPassword2: newPassword,
	}))

	_, err = s.Authenticate(ctx, current)
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, other)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(t)
	u := register(t, s, "alice")

	got, err := s.Profile(ctx, domain.Actor{UserID: u.ID})
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = s.Profile(ctx, domain.Actor{})
	require.ErrorIs(t, err, ErrUnauthorized)
}
