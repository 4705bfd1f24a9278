package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/canonical/sqltpl"
)

// skipTag marks the skip sentinel in an arguments file.
const skipTag = "!skip"

// arguments is the list of template arguments read from a YAML sequence.
// Mappings become associative arrays with their keys in file order, and a
// node tagged !skip becomes the skip sentinel.
//
//	- [name, email]
//	- {name: Jack, email: null}
//	- !skip
type arguments []any

func decodeArguments(data []byte) (arguments, error) {
	var args arguments
	if err := yaml.Unmarshal(data, &args); err != nil {
		return nil, err
	}
	return args, nil
}

// UnmarshalYAML implements [yaml.Unmarshaler] for arguments.
func (a *arguments) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a list of arguments, got %s", node.Line, kindName(node.Kind))
	}
	args := make(arguments, 0, len(node.Content))
	for i, n := range node.Content {
		v, err := nodeValue(n)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
		args = append(args, v)
	}
	*a = args
	return nil
}

func nodeValue(node *yaml.Node) (any, error) {
	if node.Tag == skipTag {
		return sqltpl.Skip(), nil
	}
	switch node.Kind {
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.SequenceNode:
		elems := make([]any, 0, len(node.Content))
		for _, n := range node.Content {
			v, err := nodeValue(n)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return sqltpl.ValueOf(elems)
	case yaml.MappingNode:
		pairs := make([]sqltpl.Pair, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, vn := node.Content[i], node.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: keys must be scalars", k.Line)
			}
			v, err := nodeValue(vn)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k.Value, err)
			}
			val, err := sqltpl.ValueOf(v)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k.Value, err)
			}
			pairs = append(pairs, sqltpl.Pair{Key: k.Value, Value: val})
		}
		return sqltpl.Assoc(pairs...), nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node %s", node.Line, kindName(node.Kind))
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return fmt.Sprintf("kind %d", k)
}
