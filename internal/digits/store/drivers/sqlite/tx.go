package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/digits/internal/digits/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open; caller commits or rolls back

// Ping is a no-op, the connection is already held by the transaction.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported
	return sql.ErrTxDone
}

func (t *txStore) Entries() store.Entries   { return &entriesRepo{q: t.tx} }
func (t *txStore) Users() store.Users       { return &usersRepo{q: t.tx} }
func (t *txStore) Sessions() store.Sessions { return &sessionsRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
