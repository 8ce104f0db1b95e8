// Package models defines server-side data models shared by the catalog,
// sessions, repositories and services.
package models

// Datastore names a server-managed configuration store.
type Datastore string

const (
	DatastoreRunning   Datastore = "running"
	DatastoreStartup   Datastore = "startup"
	DatastoreCandidate Datastore = "candidate"
)

func (d Datastore) String() string {
	return string(d)
}
