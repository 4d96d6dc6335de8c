package yaml

import (
	"errors"
	"fmt"

	"github.com/0xalexb/ciconfig-inspect/document"

	"github.com/goccy/go-yaml/ast"
)

// ErrInvalidMerge is returned when a merge key does not refer to mappings.
var ErrInvalidMerge = errors.New("merge value must be a mapping or a sequence of mappings")

// ErrUnknownAlias is returned when an alias refers to an anchor that was not defined before it.
var ErrUnknownAlias = errors.New("unknown alias")

// converter turns a goccy AST into document values.
// Anchors are recorded in document order, so an alias resolves to the value
// of the latest anchor with that name that precedes it.
type converter struct {
	anchors map[string]document.Value
}

func newConverter() *converter {
	return &converter{anchors: make(map[string]document.Value)}
}

func (c *converter) convert(node ast.Node) (document.Value, error) {
	if node == nil {
		return document.Null{}, nil
	}

	switch typed := node.(type) {
	case *ast.DocumentNode:
		return c.convert(typed.Body)
	case *ast.AnchorNode:
		value, err := c.convert(typed.Value)
		if err != nil {
			return nil, err
		}

		c.anchors[typed.Name.GetToken().Value] = value

		return value, nil
	case *ast.AliasNode:
		name := typed.Value.GetToken().Value

		value, ok := c.anchors[name]
		if !ok {
			return nil, fmt.Errorf("line %d: %w: %q", line(node), ErrUnknownAlias, name)
		}

		return value, nil
	case *ast.TagNode:
		return c.convertTagged(typed)
	case *ast.MappingNode:
		return c.convertMapping(typed.Values)
	case *ast.MappingValueNode:
		return c.convertMapping([]*ast.MappingValueNode{typed})
	case *ast.SequenceNode:
		seq := make(document.Sequence, 0, len(typed.Values))

		for _, item := range typed.Values {
			value, err := c.convert(item)
			if err != nil {
				return nil, err
			}

			seq = append(seq, value)
		}

		return seq, nil
	case ast.ScalarNode:
		value, err := document.FromAny(typed.GetValue())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line(node), err)
		}

		return value, nil
	default:
		return nil, fmt.Errorf("line %d: %w: %s", line(node), document.ErrUnsupportedType, node.Type())
	}
}

// convertTagged keeps the tagged value as is, except !!str which forces a string.
// Custom tags such as GitLab's !reference carry no meaning for the report.
func (c *converter) convertTagged(node *ast.TagNode) (document.Value, error) {
	if node.Start != nil && node.Start.Value == "!!str" {
		if scalar, ok := node.Value.(ast.ScalarNode); ok {
			return document.String(scalar.GetToken().Value), nil
		}
	}

	return c.convert(node.Value)
}

// convertMapping keeps explicit keys in source order. Merged keys fill in
// positions only for keys that are not set explicitly, earlier merge sources
// win over later ones.
func (c *converter) convertMapping(pairs []*ast.MappingValueNode) (*document.Mapping, error) {
	mapping := &document.Mapping{}
	explicit := make(map[string]bool)

	for _, pair := range pairs {
		if pair.Key != nil && pair.Key.Type() == ast.MergeKeyType {
			err := c.merge(mapping, pair.Value)
			if err != nil {
				return nil, err
			}

			continue
		}

		key, err := c.keyString(pair.Key)
		if err != nil {
			return nil, err
		}

		if explicit[key] {
			return nil, fmt.Errorf("line %d: %w: %q", line(pair), document.ErrDuplicateKey, key)
		}

		value, err := c.convert(pair.Value)
		if err != nil {
			return nil, err
		}

		explicit[key] = true
		mapping.Set(key, value)
	}

	return mapping, nil
}

func (c *converter) merge(mapping *document.Mapping, node ast.Node) error {
	value, err := c.convert(node)
	if err != nil {
		return err
	}

	var sources []*document.Mapping

	switch typed := value.(type) {
	case *document.Mapping:
		sources = append(sources, typed)
	case document.Sequence:
		for _, item := range typed {
			source, ok := item.(*document.Mapping)
			if !ok {
				return fmt.Errorf("line %d: %w", line(node), ErrInvalidMerge)
			}

			sources = append(sources, source)
		}
	default:
		return fmt.Errorf("line %d: %w", line(node), ErrInvalidMerge)
	}

	for _, source := range sources {
		for key, merged := range source.All() {
			if _, exists := mapping.Get(key); !exists {
				mapping.Set(key, merged)
			}
		}
	}

	return nil
}

func (c *converter) keyString(node ast.Node) (string, error) {
	if keyNode, ok := node.(*ast.MappingKeyNode); ok {
		node = keyNode.Value
	}

	value, err := c.convert(node)
	if err != nil {
		return "", err
	}

	switch value.(type) {
	case document.Sequence, *document.Mapping:
		return "", fmt.Errorf("line %d: %w: non-scalar mapping key", line(node), document.ErrUnsupportedType)
	}

	return value.String(), nil
}

func line(node ast.Node) int {
	if node == nil || node.GetToken() == nil || node.GetToken().Position == nil {
		return 0
	}

	return node.GetToken().Position.Line
}
