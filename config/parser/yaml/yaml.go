package yaml

import (
	"fmt"
	"strings"

	"github.com/0xalexb/ciconfig-inspect/config"
	"github.com/0xalexb/ciconfig-inspect/document"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Parser implements config.Parser interface for YAML data on top of goccy/go-yaml.
// A *any target receives a document.Value with merge keys and aliases resolved;
// other targets are decoded with yaml.NodeToValue.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data and decodes it into the target.
// The path parameter specifies a navigation path using colon (:) as separator;
// each segment is a literal key, so ".base" and "job.one" are plain keys.
// Empty path decodes the entire document. Empty input leaves target untouched.
func (p *Parser) Parse(data []byte, target any, path string) error {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrParse, err)
	}

	body, err := singleBody(file)
	if err != nil {
		return err
	}

	if body == nil {
		if path != "" {
			return fmt.Errorf("%w: %s", config.ErrPathNotFound, path)
		}

		return nil
	}

	if raw, ok := target.(*any); ok {
		return parseValue(body, raw, path)
	}

	if path != "" {
		body, err = navigate(body, path)
		if err != nil {
			return err
		}
	}

	err = yaml.NodeToValue(body, target, yaml.UseOrderedMap())
	if err != nil {
		return fmt.Errorf("%w: decoding: %w", config.ErrParse, err)
	}

	return nil
}

func parseValue(body ast.Node, raw *any, path string) error {
	value, err := newConverter().convert(body)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrParse, err)
	}

	if path != "" {
		found, ok := document.Lookup(value, splitPath(path)...)
		if !ok {
			return fmt.Errorf("%w: %s", config.ErrPathNotFound, path)
		}

		value = found
	}

	*raw = value

	return nil
}

// singleBody returns the body of the only document in the file.
// Once a non-empty document was seen, any further document is rejected,
// including an empty one introduced by "---".
func singleBody(file *ast.File) (ast.Node, error) {
	var body ast.Node

	for _, doc := range file.Docs {
		if doc == nil {
			continue
		}

		if body != nil {
			if doc.Body == nil && doc.Start == nil {
				continue
			}

			return nil, fmt.Errorf("%w: found another document at line %d",
				config.ErrMultipleDocuments, documentLine(doc))
		}

		body = doc.Body
	}

	return body, nil
}

func documentLine(doc *ast.DocumentNode) int {
	if doc.Start != nil && doc.Start.Position != nil {
		return doc.Start.Position.Line
	}

	return line(doc.Body)
}

// navigate walks the AST along the path for typed targets.
// Aliases are not followed since their anchors live outside the selected node.
func navigate(body ast.Node, path string) (ast.Node, error) {
	node := body

	for _, key := range splitPath(path) {
		pairs := mappingPairs(node)
		if pairs == nil {
			return nil, fmt.Errorf("%w: %s", config.ErrPathNotFound, path)
		}

		node = nil

		for _, pair := range pairs {
			name, err := newConverter().keyString(pair.Key)
			if err == nil && name == key {
				node = pair.Value
			}
		}

		if node == nil {
			return nil, fmt.Errorf("%w: %s", config.ErrPathNotFound, path)
		}
	}

	return node, nil
}

func mappingPairs(node ast.Node) []*ast.MappingValueNode {
	for {
		switch typed := node.(type) {
		case *ast.AnchorNode:
			node = typed.Value
		case *ast.TagNode:
			node = typed.Value
		case *ast.MappingNode:
			return typed.Values
		case *ast.MappingValueNode:
			return []*ast.MappingValueNode{typed}
		default:
			return nil
		}
	}
}

// splitPath splits a colon-separated path into literal keys.
// Examples:
//   - "build" -> ["build"]
//   - ".base:variables" -> [".base", "variables"]
func splitPath(path string) []string {
	return strings.Split(path, ":")
}
