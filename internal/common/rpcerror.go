package common

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a protocol reply error.
type ErrorKind string

const (
	KindPermissionDenied       ErrorKind = "PermissionDenied"
	KindUnsupportedTarget      ErrorKind = "UnsupportedTarget"
	KindMissingResourceLocator ErrorKind = "MissingResourceLocator"
	KindResourceImportError    ErrorKind = "ResourceImportError"
	KindSessionSwitchError     ErrorKind = "SessionSwitchError"
	KindRefreshError           ErrorKind = "RefreshError"
	KindDeleteError            ErrorKind = "DeleteError"
	KindCommitError            ErrorKind = "CommitError"
)

// NETCONF error-tag values used in replies.
const (
	TagAccessDenied    = "access-denied"
	TagOperationFailed = "operation-failed"
	TagInvalidValue    = "invalid-value"
)

// Reply messages with fixed wording.
const (
	MsgAccessDenied       = "Access to the operation is denied"
	MsgMissingTargetURL   = "Missing target url"
	MsgURLNotSupported    = "<url> source not supported"
	MsgInvalidURLConfig   = "File at url does not appear to contain a valid config"
	MsgSwitchDatastore    = "Failed to switch datastore"
	MsgRefreshDatastore   = "Failed to refresh datastore data"
	MsgDeleteConfigData   = "Failed to delete configuration data"
	MsgCommitConfigChange = "Failed to commit configuration changes"
)

// RPCError is the error half of a protocol reply. A nil error is the Ok reply.
type RPCError struct {
	Kind    ErrorKind
	Tag     string
	Message string
	Lang    string
	Cause   error
}

// NewRPCError builds an RPCError for kind with the given message, choosing
// the error-tag from the kind.
func NewRPCError(kind ErrorKind, msg string, cause error) *RPCError {
	tag := TagOperationFailed
	switch kind {
	case KindPermissionDenied:
		tag = TagAccessDenied
	case KindMissingResourceLocator:
		tag = TagInvalidValue
	}
	return &RPCError{Kind: kind, Tag: tag, Message: msg, Lang: DefaultLang, Cause: cause}
}

func (e *RPCError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RPCError) Unwrap() error {
	return e.Cause
}

// AsRPCError extracts an RPCError from err's chain.
func AsRPCError(err error) (*RPCError, bool) {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}
