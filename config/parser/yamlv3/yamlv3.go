package yamlv3

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/0xalexb/ciconfig-inspect/config"
	"github.com/0xalexb/ciconfig-inspect/document"

	"gopkg.in/yaml.v3"
)


// ErrInvalidMerge is returned when a merge key does not refer to mappings.
var ErrInvalidMerge = errors.New("merge value must be a mapping or a sequence of mappings")

// Parser implements config.Parser on top of the gopkg.in/yaml.v3 node API.
// A *any target receives a document.Value; other targets are decoded with yaml.Node.Decode.
type Parser struct{}

// NewParser creates a new yaml.v3 backed parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses data and decodes the node at path into target.
func (p *Parser) Parse(data []byte, target any, path string) error {
	root, err := singleDocument(data)
	if err != nil {
		return err
	}

	node := root
	if path != "" {
		node, err = navigate(root, path)
		if err != nil {
			return err
		}
	}

	if node == nil {
		return nil
	}

	if raw, ok := target.(*any); ok {
		value, err := convert(node)
		if err != nil {
			return fmt.Errorf("%w: %w", config.ErrParse, err)
		}

		*raw = value

		return nil
	}

	err = node.Decode(target)
	if err != nil {
		return fmt.Errorf("%w: decoding: %w", config.ErrParse, err)
	}

	return nil
}

// singleDocument returns the content node of the only non-empty document, or nil.
func singleDocument(data []byte) (*yaml.Node, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var root *yaml.Node

	for {
		var doc yaml.Node

		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return root, nil
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrParse, err)
		}

		if len(doc.Content) == 0 {
			continue
		}

		if root != nil {
			return nil, fmt.Errorf("%w: found another document at line %d",
				config.ErrMultipleDocuments, doc.Line)
		}

		root = doc.Content[0]
	}
}

func navigate(root *yaml.Node, path string) (*yaml.Node, error) {
	node := root

	for _, key := range strings.Split(path, ":") {
		node = resolve(node)
		if node == nil || node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: %s", config.ErrPathNotFound, path)
		}

		node = lookup(node, key)
		if node == nil {
			return nil, fmt.Errorf("%w: %s", config.ErrPathNotFound, path)
		}
	}

	return node, nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	var found *yaml.Node

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]

		if isMergeKey(keyNode) {
			for _, merged := range mergeSources(valueNode) {
				if found == nil {
					found = lookup(merged, key)
				}
			}

			continue
		}

		if keyNode.Value == key {
			found = valueNode
		}
	}

	return found
}

func isMergeKey(node *yaml.Node) bool {
	if node.Kind != yaml.ScalarNode || node.Value != "<<" {
		return false
	}

	switch node.Tag {
	case "", "!!merge", "tag:yaml.org,2002:merge":
		return true
	default:
		return false
	}
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	return node
}

func convert(node *yaml.Node) (document.Value, error) {
	node = resolve(node)

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return document.Null{}, nil
		}

		return convert(node.Content[0])
	case yaml.SequenceNode:
		seq := make(document.Sequence, 0, len(node.Content))

		for _, item := range node.Content {
			value, err := convert(item)
			if err != nil {
				return nil, err
			}

			seq = append(seq, value)
		}

		return seq, nil
	case yaml.MappingNode:
		return convertMapping(node)
	case yaml.ScalarNode:
		var raw any

		err := node.Decode(&raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return document.FromAny(raw)
	default:
		return nil, fmt.Errorf("line %d: %w: node kind %d", node.Line, document.ErrUnsupportedType, node.Kind)
	}
}

// convertMapping keeps explicit keys in source order. Merged keys fill in
// positions only for keys that are not set explicitly.
func convertMapping(node *yaml.Node) (*document.Mapping, error) {
	mapping := &document.Mapping{}
	explicit := make(map[string]bool)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		if isMergeKey(keyNode) {
			err := merge(mapping, valueNode)
			if err != nil {
				return nil, err
			}

			continue
		}

		key, err := keyString(keyNode)
		if err != nil {
			return nil, err
		}

		if explicit[key] {
			return nil, fmt.Errorf("line %d: %w: %q", keyNode.Line, document.ErrDuplicateKey, key)
		}

		value, err := convert(valueNode)
		if err != nil {
			return nil, err
		}

		explicit[key] = true
		mapping.Set(key, value)
	}

	return mapping, nil
}

// merge adds keys from the merge sources that are not present yet. Earlier
// sources win over later ones, explicit keys win over all of them.
func merge(mapping *document.Mapping, valueNode *yaml.Node) error {
	sources := mergeSources(valueNode)
	if sources == nil {
		return fmt.Errorf("line %d: %w", valueNode.Line, ErrInvalidMerge)
	}

	for _, source := range sources {
		merged, err := convertMapping(source)
		if err != nil {
			return err
		}

		for key, value := range merged.All() {
			if _, exists := mapping.Get(key); !exists {
				mapping.Set(key, value)
			}
		}
	}

	return nil
}

func mergeSources(valueNode *yaml.Node) []*yaml.Node {
	valueNode = resolve(valueNode)

	switch valueNode.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{valueNode}
	case yaml.SequenceNode:
		sources := make([]*yaml.Node, 0, len(valueNode.Content))

		for _, item := range valueNode.Content {
			item = resolve(item)
			if item.Kind != yaml.MappingNode {
				return nil
			}

			sources = append(sources, item)
		}

		return sources
	default:
		return nil
	}
}

func keyString(keyNode *yaml.Node) (string, error) {
	keyNode = resolve(keyNode)
	if keyNode.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: %w: non-scalar mapping key", keyNode.Line, document.ErrUnsupportedType)
	}

	var raw any

	err := keyNode.Decode(&raw)
	if err != nil {
		return "", fmt.Errorf("line %d: %w", keyNode.Line, err)
	}

	return document.KeyString(raw)
}
