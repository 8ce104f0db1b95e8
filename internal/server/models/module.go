package models

// NodeKind is the schema statement kind of a top-level node.
type NodeKind string

const (
	NodeContainer    NodeKind = "container"
	NodeList         NodeKind = "list"
	NodeLeaf         NodeKind = "leaf"
	NodeLeafList     NodeKind = "leaf-list"
	NodeAnyXML       NodeKind = "anyxml"
	NodeAnyData      NodeKind = "anydata"
	NodeChoice       NodeKind = "choice"
	NodeUses         NodeKind = "uses"
	NodeGrouping     NodeKind = "grouping"
	NodeAugment      NodeKind = "augment"
	NodeRPC          NodeKind = "rpc"
	NodeNotification NodeKind = "notification"
)

// IsDataKind reports whether nodes of kind k hold instance data that a
// datastore can store.
func (k NodeKind) IsDataKind() bool {
	switch k {
	case NodeContainer, NodeList, NodeLeaf, NodeLeafList, NodeAnyXML:
		return true
	}
	return false
}

// SchemaNode is a top-level schema node of a module.
type SchemaNode struct {
	Name      string   `yaml:"name"`
	Kind      NodeKind `yaml:"kind"`
	ReadOnly  bool     `yaml:"read_only"`
	Mandatory bool     `yaml:"mandatory"`
	// Type is the leaf base type ("string", "int", "boolean", ...); leafs only.
	Type string `yaml:"type"`
}

// Writable reports whether the node can carry configuration data.
func (n SchemaNode) Writable() bool {
	return n.Kind.IsDataKind() && !n.ReadOnly
}

// Module is a loaded schema module.
type Module struct {
	Name      string       `yaml:"name"`
	Namespace string       `yaml:"namespace"`
	Revision  string       `yaml:"revision"`
	Nodes     []SchemaNode `yaml:"nodes"`
}

// ModuleDescriptor is the per-invocation view of a module used by bulk
// deletes. HasWritableData is derived from the module's nodes.
type ModuleDescriptor struct {
	Name            string
	HasWritableData bool
}

// WildcardPath returns the path selecting every instance in the module's
// namespace, "/<module>:*".
func (d ModuleDescriptor) WildcardPath() string {
	return "/" + d.Name + ":*"
}
