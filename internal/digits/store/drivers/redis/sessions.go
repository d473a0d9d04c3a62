// Package redis keeps login sessions in Redis so several digits instances can
// share them. Entries and users always live in the SQL store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
	"github.com/aussiebroadwan/digits/internal/digits/store"
	"github.com/redis/go-redis/v9"
)

// ErrUnavailable wraps any failure talking to Redis.
var ErrUnavailable = errors.New("redis unavailable")

const DefaultPrefix = "digits"

// Sessions implements store.Sessions on top of a Redis client.
//
// Layout:
//
//	<prefix>:session:<token_hash>     JSON session, expires with the session
//	<prefix>:user:<user_id>:sessions  set of token hashes owned by the user
type Sessions struct {
	rdb    redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ store.Sessions = (*Sessions)(nil)

func NewSessions(rdb redis.UniversalClient, prefix string) *Sessions {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Sessions{rdb: rdb, prefix: prefix, now: time.Now}
}

// Ping checks the connection, used by readiness probes.
func (s *Sessions) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *Sessions) sessionKey(tokenHash string) string {
	return s.prefix + ":session:" + tokenHash
}

func (s *Sessions) userKey(userID string) string {
	return s.prefix + ":user:" + userID + ":sessions"
}

type sessionRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

func (s *Sessions) CreateSession(ctx context.Context, sess domain.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(sessionRecord{
		ID:        sess.ID,
		UserID:    sess.UserID,
		CreatedAt: sess.CreatedAt.UTC().UnixNano(),
		ExpiresAt: sess.ExpiresAt.UTC().UnixNano(),
	})
	if err != nil {
		return err
	}

	ok, err := s.rdb.SetNX(ctx, s.sessionKey(sess.TokenHash), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return store.ErrAlreadyExists
	}

	userKey := s.userKey(sess.UserID)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, userKey, sess.TokenHash)
		// Sessions share one lifetime, so the newest one outlives the rest.
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *Sessions) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	data, err := s.rdb.Get(ctx, s.sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, store.ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}

	return domain.Session{
		ID:        rec.ID,
		UserID:    rec.UserID,
		TokenHash: tokenHash,
		CreatedAt: time.Unix(0, rec.CreatedAt).UTC(),
		ExpiresAt: time.Unix(0, rec.ExpiresAt).UTC(),
	}, nil
}

func (s *Sessions) DeleteSession(ctx context.Context, tokenHash string) error {
	sess, err := s.GetSessionByTokenHash(ctx, tokenHash)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.sessionKey(tokenHash))
		pipe.SRem(ctx, s.userKey(sess.UserID), tokenHash)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *Sessions) DeleteUserSessionsExcept(ctx context.Context, userID, keepTokenHash string) error {
	userKey := s.userKey(userID)

	hashes, err := s.rdb.SMembers(ctx, userKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	drop := make([]string, 0, len(hashes))
	for _, h := range hashes {
		if h != keepTokenHash {
			drop = append(drop, h)
		}
	}
	if len(drop) == 0 {
		return nil
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		keys := make([]string, len(drop))
		members := make([]any, len(drop))
		for i, h := range drop {
			keys[i] = s.sessionKey(h)
			members[i] = h
		}
		pipe.Del(ctx, keys...)
		pipe.SRem(ctx, userKey, members...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
