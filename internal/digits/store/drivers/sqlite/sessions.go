package sqlite

import (
	"context"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
)

type sessionsRepo struct {
	q dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, token_hash, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.TokenHash, toUnix(s.CreatedAt), toUnix(s.ExpiresAt),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	var (
		s                    domain.Session
		createdAt, expiresAt int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, created_at, expires_at
		FROM sessions WHERE token_hash = ?`, tokenHash,
	).Scan(&s.ID, &s.UserID, &s.TokenHash, &createdAt, &expiresAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.CreatedAt = fromUnix(createdAt)
	s.ExpiresAt = fromUnix(expiresAt)
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, tokenHash string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, tokenHash)
	return err
}

func (r *sessionsRepo) DeleteUserSessionsExcept(ctx context.Context, userID, keepTokenHash string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = ? AND token_hash <> ?`,
		userID, keepTokenHash,
	)
	return err
}
