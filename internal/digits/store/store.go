package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so services never hold a raw connection.
type Store interface {
	Entries() Entries
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Entries is the repository for stored number pairs. Every method touches a
// single row and is atomic on its own.
type Entries interface {
	// CreateEntry inserts a new entry (id is generated by the service).
	CreateEntry(ctx context.Context, e domain.Entry) error

	// GetEntry returns an entry by id.
	GetEntry(ctx context.Context, id string) (domain.Entry, error)

	// UpdateEntryFields writes only the fields set in upd.
	UpdateEntryFields(ctx context.Context, id string, upd domain.EntryUpdate) error

	// DeleteEntry removes an entry, ErrNotFound when it does not exist.
	DeleteEntry(ctx context.Context, id string) error

	// ListRecentEntries returns up to limit entries, newest first.
	ListRecentEntries(ctx context.Context, limit int) ([]domain.Entry, error)
}

type Users interface {
	// CreateUser inserts a new user, ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

// Sessions stores logins. Implemented by the sql drivers and by redis.
type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash looks a session up by the fingerprint of its cookie token.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// DeleteSession is idempotent, deleting a missing session is not an error.
	DeleteSession(ctx context.Context, tokenHash string) error

	// DeleteUserSessionsExcept drops every session of the user apart from keepTokenHash.
	DeleteUserSessionsExcept(ctx context.Context, userID, keepTokenHash string) error
}
