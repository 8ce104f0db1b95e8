package models

// TargetKind discriminates the <delete-config> target.
type TargetKind int

const (
	TargetNamedStore TargetKind = iota + 1
	TargetExternalResource
)

// Target is the decoded wipe target. Exactly one of Datastore or Locator
// is meaningful, selected by Kind.
type Target struct {
	Kind      TargetKind
	Datastore Datastore
	Locator   string
}

// NamedStore builds a datastore target.
func NamedStore(ds Datastore) Target {
	return Target{Kind: TargetNamedStore, Datastore: ds}
}

// ExternalResource builds a url target.
func ExternalResource(locator string) Target {
	return Target{Kind: TargetExternalResource, Locator: locator}
}

// Target choice branch names as they appear on the wire.
const (
	BranchStartup = "startup"
	BranchURL     = "url"
)

// TargetChoice is the selected branch of the request's target choice.
// Value is nil when the branch carries no leaf value.
type TargetChoice struct {
	Branch string
	Value  *string
}

// DeleteConfigRequest is a parsed <delete-config> RPC.
type DeleteConfigRequest struct {
	Target TargetChoice
}
