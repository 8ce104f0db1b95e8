package grpc

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/dmitrijs2005/netconfd/internal/server/services"
)

// ---- fakes ----

type fakeSession struct {
	mu   sync.Mutex
	id   string
	user string
	ds   models.Datastore

	locked bool
}

func (f *fakeSession) ID() string                  { return f.id }
func (f *fakeSession) User() string                { return f.user }
func (f *fakeSession) Datastore() models.Datastore { return f.ds }
func (f *fakeSession) Revision() int64             { return 1 }
func (f *fakeSession) Lock()                       { f.mu.Lock(); f.locked = true }
func (f *fakeSession) Unlock()                     { f.locked = false; f.mu.Unlock() }

func (f *fakeSession) SwitchDatastore(_ context.Context, ds models.Datastore) error {
	f.ds = ds
	return nil
}
func (f *fakeSession) Refresh(context.Context) error            { return nil }
func (f *fakeSession) DeleteItem(context.Context, string) error { return nil }
func (f *fakeSession) Commit(context.Context) error             { return nil }
func (f *fakeSession) DiscardChanges(context.Context) error     { return nil }

type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]*fakeSession
	next     int
	openErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]*fakeSession{}}
}

func (f *fakeStore) add(id, user string) *fakeSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &fakeSession{id: id, user: user, ds: models.DatastoreRunning}
	f.sessions[id] = s
	return s
}

func (f *fakeStore) Open(_ context.Context, user string) (Session, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.mu.Lock()
	f.next++
	id := "sess-" + string(rune('0'+f.next))
	f.mu.Unlock()
	return f.add(id, user), nil
}

func (f *fakeStore) Get(id string) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, common.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeStore) Close(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return common.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

type fakeRunner struct {
	err      error
	got      []models.DeleteConfigRequest
	sawLock  bool
	sessions []services.Session
}

func (f *fakeRunner) DeleteConfig(_ context.Context, sess services.Session, req models.DeleteConfigRequest) error {
	f.got = append(f.got, req)
	f.sessions = append(f.sessions, sess)
	if fs, ok := sess.(*fakeSession); ok {
		f.sawLock = fs.locked
	}
	return f.err
}
