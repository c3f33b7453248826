// Package document loads YAML definition files into an ordered tree.
//
// Definition files carry meaning in the order of their keys (object
// properties, command arguments, config items), so documents are decoded
// through yaml.v3 nodes instead of plain Go maps. Mappings keep their key
// order and the source line of every key.
package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a parsed YAML definition file.
type Document struct {
	// Path is the file the document was loaded from.
	Path string

	// Root is the top-level mapping. It is empty for an empty file.
	Root *Mapping
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse parses YAML data. The path is only used for error messages.
func Parse(path string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	doc := &Document{Path: path, Root: NewMapping()}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return doc, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing %s:%d: top-level value must be a mapping", path, node.Line)
	}

	value, err := convert(path, node)
	if err != nil {
		return nil, err
	}
	doc.Root = value.(*Mapping)
	return doc, nil
}

// Plain returns the document as plain Go values (map[string]any, []any and
// scalars), suitable for schema validation.
func (d *Document) Plain() map[string]any {
	return d.Root.Plain()
}

func convert(path string, node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return convert(path, node.Alias)

	case yaml.MappingNode:
		m := NewMapping()
		m.line = node.Line
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("parsing %s:%d: mapping keys must be scalars", path, keyNode.Line)
			}
			key := keyNode.Value
			if m.Has(key) {
				return nil, fmt.Errorf("parsing %s:%d: duplicate key %q", path, keyNode.Line, key)
			}
			value, err := convert(path, valueNode)
			if err != nil {
				return nil, err
			}
			m.set(key, value, keyNode.Line)
		}
		return m, nil

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := convert(path, child)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil

	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("parsing %s:%d: %w", path, node.Line, err)
		}
		return value, nil

	default:
		return nil, fmt.Errorf("parsing %s:%d: unsupported YAML node", path, node.Line)
	}
}
