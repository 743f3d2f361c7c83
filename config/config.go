// Package config loads experiment documents from disk and runs the full
// validation pipeline over them.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/convoy-rl/convoy/experiment"
	"github.com/convoy-rl/convoy/validate"
)

// Load reads and validates the experiment document at path. See LoadBytes.
func Load(path string) (*experiment.Descriptor, *validate.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading experiment file %s: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a raw experiment document. It returns
// either a fully populated descriptor with a clean (possibly warning-only)
// result, or a nil descriptor with every validation error collected, never
// a partially valid descriptor. The error return is reserved for
// internal failures such as schema compilation; document problems always
// land in the Result.
//
// Malformed YAML aborts immediately with a single syntax error. Otherwise
// the document is checked in one pass: duplicate mapping keys, then the
// structural schema, then typed field checks. Cross-field checks run only
// when all of those pass. No filesystem access happens here; scenario
// directories are the external harness's concern.
func LoadBytes(data []byte) (*experiment.Descriptor, *validate.Result, error) {
	result := &validate.Result{}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		result.AddError(validate.KindSyntax, "", nil, err.Error())
		return nil, result, nil
	}

	result.Merge(validate.DuplicateKeys(&root))

	// Decode the node tree by hand rather than through yaml decoding, which
	// treats a duplicate key as its own fatal error. The scan above already
	// reported collisions with their paths; here the last value wins.
	doc, err := nodeToValue(&root)
	if err != nil {
		result.AddError(validate.KindSyntax, "", nil, err.Error())
		return nil, result, nil
	}
	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding document for schema validation: %w", err)
	}

	schemaResult, err := validate.Document(jsonDoc)
	if err != nil {
		return nil, nil, err
	}
	result.Merge(schemaResult)
	if !result.IsValid() {
		return nil, result, nil
	}

	desc, err := experiment.Parse(data)
	if err != nil {
		result.AddError(validate.KindType, "", nil, err.Error())
		return nil, result, nil
	}

	result.Merge(validate.CheckFields(desc))
	if !result.IsValid() {
		return nil, result, nil
	}

	result.Merge(validate.CrossCheck(desc))
	if !result.IsValid() {
		return nil, result, nil
	}

	return desc, result, nil
}

func nodeToValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeToValue(n.Content[0])
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeToValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := nodeToValue(item)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
