package grpc

import (
	"context"

	"github.com/dmitrijs2005/netconfd/internal/server/sessions"
)

type managerStore struct {
	m *sessions.Manager
}

// NewSessionStore exposes a session manager to the transport.
func NewSessionStore(m *sessions.Manager) SessionStore {
	return managerStore{m: m}
}

func (s managerStore) Open(ctx context.Context, user string) (Session, error) {
	sess, err := s.m.Open(ctx, user)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s managerStore) Get(id string) (Session, error) {
	sess, err := s.m.Get(id)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s managerStore) Close(ctx context.Context, id string) error {
	return s.m.Close(ctx, id)
}
