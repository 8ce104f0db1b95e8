package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("no open session")
)

// ReplyError is a protocol error reply decoded from the gRPC status details.
type ReplyError struct {
	Kind    string
	Tag     string
	Message string
	Lang    string
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Tag, e.Message)
}
