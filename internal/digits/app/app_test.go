package app

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/digits/pkg/digitsdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		DatabaseFile:        filepath.Join(dir, "digits.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		SigningKeyFile:      filepath.Join(dir, "keys", "signing.key"),
		SessionBackend:      SessionBackendSQLite,
		SessionTTL:          time.Hour,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		Port:                0,
		ShutdownGracePeriod: time.Second,
	}
}

func TestNewPersistsSecrets(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, app.Shutdown())

	key, err := os.ReadFile(cfg.SigningKeyFile)
	require.NoError(t, err)
	info, err := os.Stat(cfg.PepperFile)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	app, err = New(cfg)
	require.NoError(t, err)
	defer app.Shutdown()

	again, err := os.ReadFile(cfg.SigningKeyFile)
	require.NoError(t, err)
	require.Equal(t, key, again, "signing key reused across restarts")
}

func TestNewRejectsUnknownSessionBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionBackend = "memcached"

	_, err := New(cfg)
	require.ErrorContains(t, err, "unknown session backend")
}

func TestNewFailsWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.SessionBackend = SessionBackendRedis
	cfg.RedisAddr = mr.Addr()
	mr.Close()

	_, err := New(cfg)
	require.ErrorContains(t, err, "failed to connect to redis")
}

func TestApplicationServesWithRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.SessionBackend = SessionBackendRedis
	cfg.RedisAddr = mr.Addr()

	app, err := New(cfg)
	require.NoError(t, err)
	defer app.Shutdown()

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	ctx := context.Background()
	c, err := digitsdk.NewClient(srv.URL)
	require.NoError(t, err)

	ready, err := c.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Sessions)

	const password = "a long enough password"
	_, err = c.Register(ctx, "carol", password, password)
	require.NoError(t, err)
	_, err = c.Login(ctx, "carol", password)
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 2, "one session key and one per-user set")

	profile, err := c.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "carol", profile.Username)

	shown, err := c.Start(ctx, "55555")
	require.NoError(t, err)
	committed, err := c.Commit(ctx, shown.SignedPayload)
	require.NoError(t, err)
	require.NotEmpty(t, committed.EntryID)
}
