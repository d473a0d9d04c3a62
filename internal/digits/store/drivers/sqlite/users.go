package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
)

type usersRepo struct {
	q dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, toUnix(u.CreatedAt), toUnix(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT id, username, password_hash, created_at, updated_at FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, `SELECT id, username, password_hash, created_at, updated_at FROM users WHERE username = ?`, username)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, toUnix(time.Now()), userID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt int64
	)
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = fromUnix(createdAt)
	u.UpdatedAt = fromUnix(updatedAt)
	return u, nil
}
