package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
)

const entryColumns = `id, user_number, random_number, security_string, created_at,
	revealed, challenge_indices, challenge_created_at`

type entriesRepo struct {
	q dbtx
}

func (r *entriesRepo) CreateEntry(ctx context.Context, e domain.Entry) error {
	var challengeAt sql.NullInt64
	if e.HasChallenge() {
		challengeAt = mapOptionalUnix(e.ChallengeCreatedAt)
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.UserNumber,
		e.RandomNumber,
		e.SecurityString,
		toUnix(e.CreatedAt),
		e.Revealed,
		encodeIndices(e.ChallengeIndices),
		challengeAt,
	)
	return mapConstraint(err)
}

func (r *entriesRepo) GetEntry(ctx context.Context, id string) (domain.Entry, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err != nil {
		return domain.Entry{}, mapNotFound(err)
	}
	return e, nil
}

func (r *entriesRepo) UpdateEntryFields(ctx context.Context, id string, upd domain.EntryUpdate) error {
	var (
		sets []string
		args []any
	)

	if upd.Revealed != nil {
		sets = append(sets, "revealed = ?")
		args = append(args, *upd.Revealed)
	}
	if upd.Challenge != nil {
		sets = append(sets, "challenge_indices = ?", "challenge_created_at = ?")
		args = append(args, encodeIndices(upd.Challenge.Indices), mapOptionalUnix(upd.Challenge.CreatedAt))
	}

	if len(sets) == 0 {
		// Nothing to write, but callers still expect ErrNotFound for unknown ids.
		var one int
		err := r.q.QueryRowContext(ctx, `SELECT 1 FROM entries WHERE id = ?`, id).Scan(&one)
		return mapNotFound(err)
	}

	args = append(args, id)
	res, err := r.q.ExecContext(ctx,
		`UPDATE entries SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		args...,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *entriesRepo) DeleteEntry(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *entriesRepo) ListRecentEntries(ctx context.Context, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Entry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.Entry, error) {
	var (
		e           domain.Entry
		createdAt   int64
		indices     string
		challengeAt sql.NullInt64
	)
	if err := row.Scan(
		&e.ID,
		&e.UserNumber,
		&e.RandomNumber,
		&e.SecurityString,
		&createdAt,
		&e.Revealed,
		&indices,
		&challengeAt,
	); err != nil {
		return domain.Entry{}, err
	}

	parsed, err := decodeIndices(indices)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry %s has corrupt challenge indices %q: %w", e.ID, indices, err)
	}

	e.CreatedAt = fromUnix(createdAt)
	e.ChallengeIndices = parsed
	e.ChallengeCreatedAt = mapNullUnix(challengeAt)
	return e, nil
}
