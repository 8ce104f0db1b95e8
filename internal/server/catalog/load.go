package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

type file struct {
	Modules []models.Module `yaml:"modules"`
}

var knownKinds = map[models.NodeKind]struct{}{
	models.NodeContainer:    {},
	models.NodeList:         {},
	models.NodeLeaf:         {},
	models.NodeLeafList:     {},
	models.NodeAnyXML:       {},
	models.NodeAnyData:      {},
	models.NodeChoice:       {},
	models.NodeUses:         {},
	models.NodeGrouping:     {},
	models.NodeAugment:      {},
	models.NodeRPC:          {},
	models.NodeNotification: {},
}

// Default returns the built-in catalog of base modules.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads a YAML catalog from path. An empty path yields the default
// catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a single YAML catalog document. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("expected single document")
	}

	seen := make(map[string]struct{}, len(f.Modules))
	for _, m := range f.Modules {
		if m.Name == "" {
			return nil, fmt.Errorf("module without name")
		}
		if _, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("duplicate module %q", m.Name)
		}
		seen[m.Name] = struct{}{}
		for _, n := range m.Nodes {
			if n.Name == "" {
				return nil, fmt.Errorf("module %q: node without name", m.Name)
			}
			if _, ok := knownKinds[n.Kind]; !ok {
				return nil, fmt.Errorf("module %q: node %q: unknown kind %q", m.Name, n.Name, n.Kind)
			}
		}
	}
	return New(f.Modules...), nil
}
