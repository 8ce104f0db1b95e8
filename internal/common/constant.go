// Package common contains shared constants, sentinel errors and the
// protocol-level error type used across netconfd components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound requests.
const AccessTokenHeaderName = "access_token"

// SessionIDHeaderName is the gRPC metadata key carrying the protocol session id.
const SessionIDHeaderName = "session-id"

// DefaultLang is the locale attached to every error message.
const DefaultLang = "en"
