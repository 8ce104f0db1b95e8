package urlimport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrInvalidDocument = errors.New("invalid configuration document")

// Document is a decoded configuration document keyed by "<module>:<node>".
type Document map[string]any

// Validator checks configuration documents in strict mode: every member
// must name a writable top-level node of a loaded module, mandatory nodes
// must be present and values must match the node kind.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles a validator for the given modules.
func NewValidator(modules iter.Seq[models.Module]) (*Validator, error) {
	raw, err := json.Marshal(documentSchema(modules))
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}

	schema, err := jsonschema.CompileString("config.schema.json", string(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Parse decodes data and validates it.
func (v *Validator) Parse(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidDocument)
	}

	if err := v.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	// The schema only accepts objects at the top level.
	return Document(doc.(map[string]any)), nil
}

func documentSchema(modules iter.Seq[models.Module]) map[string]any {
	props := map[string]any{}
	required := []string{}

	for m := range modules {
		for _, n := range m.Nodes {
			if !n.Writable() {
				continue
			}
			key := m.Name + ":" + n.Name
			props[key] = nodeSchema(n)
			if n.Mandatory {
				required = append(required, key)
			}
		}
	}

	s := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// nodeSchema constrains the JSON type of a top-level node. Members below a
// container or list entry are not modelled by the catalog and pass unchecked.
func nodeSchema(n models.SchemaNode) map[string]any {
	switch n.Kind {
	case models.NodeContainer:
		return map[string]any{"type": "object"}
	case models.NodeList:
		return map[string]any{"type": "array", "items": map[string]any{"type": "object"}}
	case models.NodeLeaf:
		return leafSchema(n.Type)
	case models.NodeLeafList:
		return map[string]any{"type": "array", "items": leafSchema(n.Type)}
	default:
		// anyxml
		return map[string]any{}
	}
}

func leafSchema(typ string) map[string]any {
	switch typ {
	case "string", "binary", "bits", "enumeration", "identityref", "instance-identifier":
		return map[string]any{"type": "string"}
	case "int", "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64", "integer":
		return map[string]any{"type": "integer"}
	case "decimal64", "number":
		return map[string]any{"type": "number"}
	case "boolean":
		return map[string]any{"type": "boolean"}
	case "empty":
		return map[string]any{"type": "array", "maxItems": 1, "items": map[string]any{"type": "null"}}
	default:
		return map[string]any{"type": []string{"string", "number", "boolean"}}
	}
}
