// Package dbx provides tiny DB abstractions shared by repositories and
// sessions: a minimal interface (DBTX) implemented by *sql.DB, *sql.Conn and
// *sql.Tx, and Batch, a lazily opened transaction that is committed or
// discarded as a whole.
package dbx

import (
	"context"
	"database/sql"
	"errors"
)

// DBTX is the subset of database/sql used by our repos.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxBeginner starts transactions. Both *sql.DB and *sql.Conn satisfy it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Batch accumulates statements in a single transaction that is begun on
// first use. A Batch is not safe for concurrent use.
type Batch struct {
	db   TxBeginner
	opts *sql.TxOptions
	tx   *sql.Tx
}

// NewBatch returns an empty batch over db.
func NewBatch(db TxBeginner, opts *sql.TxOptions) *Batch {
	return &Batch{db: db, opts: opts}
}

// Tx returns the batch transaction, beginning it if necessary.
func (b *Batch) Tx(ctx context.Context) (*sql.Tx, error) {
	if b.tx != nil {
		return b.tx, nil
	}
	tx, err := b.db.BeginTx(ctx, b.opts)
	if err != nil {
		return nil, err
	}
	b.tx = tx
	return tx, nil
}

// Pending reports whether a transaction is open.
func (b *Batch) Pending() bool {
	return b.tx != nil
}

// Commit commits the open transaction. It is a no-op when nothing is pending.
// The batch is empty afterwards whatever the outcome.
func (b *Batch) Commit() error {
	if b.tx == nil {
		return nil
	}
	tx := b.tx
	b.tx = nil
	return tx.Commit()
}

// Rollback discards the open transaction. It is a no-op when nothing is
// pending, and a transaction already finished by the driver is not an error.
func (b *Batch) Rollback() error {
	if b.tx == nil {
		return nil
	}
	tx := b.tx
	b.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
