package metadata

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument indicates an embedded metadata document that cannot be read.
var ErrInvalidDocument = errors.New("metadata: invalid document")

// ParseYAML reads a metadata document mapping tags to a scalar or a sequence
// of scalars:
//
//	ExtendedVersion: 0.1.2-rev3.4
//	ExtendedVersionAttribute: ["1.0", "+build5"]
//
// Scalars are kept verbatim, so 1.0 stays "1.0". An empty document yields no
// entries.
func ParseYAML(data []byte) (Entries, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	entries := Entries{}
	if len(doc.Content) == 0 {
		return entries, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return entries, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of tags", ErrInvalidDocument, root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		name := strings.TrimSpace(key.Value)
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: empty tag", ErrInvalidDocument, key.Line)
		}
		tag := ParseTag(name)
		if _, dup := entries[tag]; dup {
			return nil, fmt.Errorf("%w: line %d: tag %s defined twice", ErrInvalidDocument, key.Line, tag)
		}
		fragments, err := fragmentsOf(value)
		if err != nil {
			return nil, fmt.Errorf("%w: tag %s: %w", ErrInvalidDocument, tag, err)
		}
		entries[tag] = fragments
	}

	return entries, nil
}

func fragmentsOf(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{scalarText(node)}, nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("line %d: no fragments", node.Line)
		}
		fragments := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: fragment is not a scalar", item.Line)
			}
			fragments = append(fragments, scalarText(item))
		}
		return fragments, nil
	default:
		return nil, fmt.Errorf("line %d: expected a scalar or a sequence", node.Line)
	}
}

// scalarText maps an explicit null to the empty fragment.
func scalarText(node *yaml.Node) string {
	if node.Tag == "!!null" {
		return ""
	}
	return node.Value
}
