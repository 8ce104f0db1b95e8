// Package sessions manages protocol sessions. Each session owns one dedicated
// database connection, the datastore it currently points at, and the batch
// of uncommitted changes made through it.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"github.com/dmitrijs2005/netconfd/internal/dbx"
	"github.com/dmitrijs2005/netconfd/internal/logging"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/dmitrijs2005/netconfd/internal/server/repositories/repomanager"
)

// Session is bound to exactly one datastore connection. Callers serialise
// requests on a session with Lock/Unlock; the datastore methods themselves
// assume the lock is held.
type Session struct {
	mu sync.Mutex

	id   string
	user string

	conn        *sql.Conn
	repomanager repomanager.RepositoryManager
	batch       *dbx.Batch
	logger      logging.Logger

	ds       models.Datastore
	revision int64
	closed   bool

	// guarded by Manager.mu
	lastUsed time.Time
}

func newSession(id, user string, conn *sql.Conn, rm repomanager.RepositoryManager, ds models.Datastore, l logging.Logger) *Session {
	return &Session{
		id:          id,
		user:        user,
		conn:        conn,
		repomanager: rm,
		batch:       dbx.NewBatch(conn, nil),
		logger:      l.With("session_id", id),
		ds:          ds,
	}
}

func (s *Session) ID() string                  { return s.id }
func (s *Session) User() string                { return s.user }
func (s *Session) Datastore() models.Datastore { return s.ds }

// Revision is the datastore revision observed at the last refresh or commit.
func (s *Session) Revision() int64 { return s.revision }

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// db returns the handle statements should run on: the pending transaction
// when there is one, the session connection otherwise.
func (s *Session) db(ctx context.Context) (dbx.DBTX, error) {
	if s.batch.Pending() {
		return s.batch.Tx(ctx)
	}
	return s.conn, nil
}

// SwitchDatastore points the session at ds. It refuses while changes are
// pending and fails with common.ErrUnknownDatastore for unknown stores.
func (s *Session) SwitchDatastore(ctx context.Context, ds models.Datastore) error {
	if s.closed {
		return common.ErrSessionClosed
	}
	if s.batch.Pending() {
		return common.ErrChangesPending
	}

	rev, err := s.repomanager.Items(s.conn).Revision(ctx, ds)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: %s", common.ErrUnknownDatastore, ds)
		}
		return err
	}

	s.logger.Debug(ctx, "datastore switched", "from", s.ds, "to", ds)
	s.ds = ds
	s.revision = rev
	return nil
}

// Refresh checks the connection and reloads the datastore revision.
func (s *Session) Refresh(ctx context.Context) error {
	if s.closed {
		return common.ErrSessionClosed
	}
	if err := s.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	rev, err := s.repomanager.Items(db).Revision(ctx, s.ds)
	if err != nil {
		return err
	}
	s.revision = rev
	return nil
}

// DeleteItem adds the removal of xpath to the session's batch. Only
// "/<module>:*" is accepted; it removes everything stored for the module.
// Removing data that does not exist is not an error.
func (s *Session) DeleteItem(ctx context.Context, xpath string) error {
	if s.closed {
		return common.ErrSessionClosed
	}
	module, err := wildcardModule(xpath)
	if err != nil {
		return err
	}

	tx, err := s.batch.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	n, err := s.repomanager.Items(tx).DeleteModule(ctx, s.ds, module)
	if err != nil {
		return err
	}

	s.logger.Debug(ctx, "items deleted", "datastore", s.ds, "path", xpath, "rows", n)
	return nil
}

// Commit applies the batch and bumps the datastore revision. With nothing
// pending it does nothing.
func (s *Session) Commit(ctx context.Context) error {
	if s.closed {
		return common.ErrSessionClosed
	}
	if !s.batch.Pending() {
		return nil
	}

	tx, err := s.batch.Tx(ctx)
	if err != nil {
		return err
	}
	rev, err := s.repomanager.Items(tx).BumpRevision(ctx, s.ds)
	if err != nil {
		return fmt.Errorf("bump revision: %w", err)
	}
	if err := s.batch.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.revision = rev
	s.logger.Info(ctx, "changes committed", "datastore", s.ds, "revision", rev)
	return nil
}

// DiscardChanges drops the batch.
func (s *Session) DiscardChanges(ctx context.Context) error {
	if err := s.batch.Rollback(); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

func (s *Session) close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	rbErr := s.DiscardChanges(ctx)
	return errors.Join(rbErr, s.conn.Close())
}

// wildcardModule returns the module of a "/<module>:*" path.
func wildcardModule(xpath string) (string, error) {
	module, ok := strings.CutPrefix(xpath, "/")
	if ok {
		module, ok = strings.CutSuffix(module, ":*")
	}
	if !ok || module == "" || strings.ContainsAny(module, "/:*") {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidPath, xpath)
	}
	return module, nil
}
