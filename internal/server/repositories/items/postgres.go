// Package items provides the PostgreSQL-backed repository for datastore
// contents: the named datastores with their revisions and the configuration
// items stored in them.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"github.com/dmitrijs2005/netconfd/internal/dbx"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
)

// PostgresRepository implements datastore storage over a dbx.DBTX
// (*sql.DB, *sql.Conn or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Revision returns the current revision of ds.
// If the datastore does not exist, it returns common.ErrorNotFound.
func (r *PostgresRepository) Revision(ctx context.Context, ds models.Datastore) (int64, error) {
	query := `
		SELECT revision
		FROM datastores
		WHERE name = $1
	`
	var rev int64
	if err := r.db.QueryRowContext(ctx, query, string(ds)).Scan(&rev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return rev, nil
}

// BumpRevision increments the revision of ds and returns the new value.
func (r *PostgresRepository) BumpRevision(ctx context.Context, ds models.Datastore) (int64, error) {
	query := `
		UPDATE datastores
		SET revision = revision + 1, updated_at = now()
		WHERE name = $1
		RETURNING revision
	`
	var rev int64
	if err := r.db.QueryRowContext(ctx, query, string(ds)).Scan(&rev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return rev, nil
}

// DeleteModule removes every item of module from ds and returns how many
// rows were removed. Deleting from an empty module is not an error.
func (r *PostgresRepository) DeleteModule(ctx context.Context, ds models.Datastore, module string) (int64, error) {
	query := `
		DELETE FROM config_items
		WHERE datastore = $1 AND module = $2
	`
	res, err := r.db.ExecContext(ctx, query, string(ds), module)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
