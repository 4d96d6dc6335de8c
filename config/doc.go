// Package config defines how raw YAML reaches the inspector.
//
// The package uses an interface-based design with four extension points:
//   - DataFetcher: retrieves raw bytes (see config/fetcher/file)
//   - Parser: decodes bytes into a target, with path navigation support
//     (see config/parser/yaml and config/parser/yamlv3)
//   - Defaulter: applies default values before validation
//   - Validator: validates the result after parsing
//
// # Path Navigation
//
// Paths use colon (:) as the separator:
//
//	"build"            -> doc["build"]
//	"build:variables"  -> doc["build"]["variables"]
//	""                 -> entire document
//
// # Example
//
//	var raw any
//	provider := config.Provider(&raw, "build")
//	result, err := provider(yamlparser.NewParser(), fetcher)
package config
