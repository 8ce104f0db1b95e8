package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"github.com/dmitrijs2005/netconfd/internal/logging"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/dmitrijs2005/netconfd/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// newSessionID is a seam for tests.
var newSessionID = func() string {
	return uuid.NewString()
}

// Observer is told about every session that opens or closes, whatever the
// reason for closing.
type Observer interface {
	SessionOpened()
	SessionClosed()
}

type nopObserver struct{}

func (nopObserver) SessionOpened() {}
func (nopObserver) SessionClosed() {}

// Option configures a Manager.
type Option func(*Manager)

// WithObserver reports session lifecycle events to o.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observer = o
		}
	}
}

// WithIdleTimeout makes sessions unused for d eligible for ReapIdle.
// Zero disables reaping.
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) { m.idleTimeout = d }
}

// Manager tracks open sessions.
type Manager struct {
	mu       sync.Mutex
	db       *sql.DB
	rm       repomanager.RepositoryManager
	initial  models.Datastore
	logger   logging.Logger
	sessions map[string]*Session

	observer    Observer
	idleTimeout time.Duration
	now         func() time.Time
}

// NewManager returns a manager whose sessions start on the initial datastore.
func NewManager(db *sql.DB, rm repomanager.RepositoryManager, initial models.Datastore, l logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		db:       db,
		rm:       rm,
		initial:  initial,
		logger:   l.With("module", "sessions"),
		sessions: make(map[string]*Session),
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open reserves a dedicated connection for a new session of user and loads
// the initial datastore state.
func (m *Manager) Open(ctx context.Context, user string) (*Session, error) {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	s := newSession(newSessionID(), user, conn, m.rm, m.initial, m.logger)
	if err := s.Refresh(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initial refresh: %w", err)
	}

	m.mu.Lock()
	s.lastUsed = m.now()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.observer.SessionOpened()
	m.logger.Info(ctx, "session opened", "session_id", s.id, "user", user)
	return s, nil
}

// Get returns the session with the given id and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, common.ErrSessionNotFound
	}
	s.lastUsed = m.now()
	return s, nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close discards pending changes of the session and releases its connection.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return common.ErrSessionNotFound
	}

	s.Lock()
	defer s.Unlock()
	return m.release(ctx, s, "closed")
}

// CloseAll closes every session.
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := m.Close(ctx, id); err != nil && !errors.Is(err, common.ErrSessionNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReapIdle closes sessions that have not been used for the idle timeout and
// returns how many it closed. Sessions busy with a request are skipped.
func (m *Manager) ReapIdle(ctx context.Context) int {
	if m.idleTimeout <= 0 {
		return 0
	}

	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if !s.lastUsed.Before(cutoff) || !s.mu.TryLock() {
			continue
		}
		delete(m.sessions, id)
		idle = append(idle, s)
	}
	m.mu.Unlock()

	for _, s := range idle {
		_ = m.release(ctx, s, "reaped")
		s.Unlock()
	}
	return len(idle)
}

// RunReaper calls ReapIdle every interval until ctx is done.
func (m *Manager) RunReaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.ReapIdle(ctx); n > 0 {
				m.logger.Info(ctx, "idle sessions reaped", "count", n)
			}
		}
	}
}

// release closes a session already removed from the map. The caller holds
// the session lock.
func (m *Manager) release(ctx context.Context, s *Session, how string) error {
	err := s.close(ctx)
	m.observer.SessionClosed()
	if err != nil {
		m.logger.Warn(ctx, "session close failed", "session_id", s.id, "error", err)
		return err
	}
	m.logger.Info(ctx, "session "+how, "session_id", s.id)
	return nil
}
