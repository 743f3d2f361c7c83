package validate

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// DuplicateKeys scans a parsed YAML document for repeated mapping keys,
// reporting each collision with its dotted path. Group and scenario name
// collisions would otherwise collapse to a single entry before any typed
// check could see them.
func DuplicateKeys(root *yaml.Node) *Result {
	r := &Result{}
	if root == nil {
		return r
	}
	node := root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	scanNode(node, "", r)
	return r
}

func scanNode(node *yaml.Node, path string, r *Result) {
	switch node.Kind {
	case yaml.MappingNode:
		seen := make(map[string]bool, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			val := node.Content[i+1]
			childPath := joinPath(path, key.Value)
			if seen[key.Value] {
				r.AddError(KindDuplicateKey, childPath, key.Value, "mapping key must be unique")
			}
			seen[key.Value] = true
			scanNode(val, childPath, r)
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			scanNode(item, joinPath(path, strconv.Itoa(i)), r)
		}
	case yaml.AliasNode:
		// Anchored content is scanned where it is defined.
	}
}

func joinPath(base, elem string) string {
	if base == "" {
		return elem
	}
	return base + "." + elem
}
