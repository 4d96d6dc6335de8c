// Package yaml provides the default YAML parser for the config package.
//
// This package uses github.com/goccy/go-yaml. Input is parsed into an AST
// first so that streams with more than one document can be rejected. For
// interface targets the AST is converted into document values directly, which
// keeps mapping order and resolves anchors, aliases and merge keys with
// explicit keys winning over merged ones.
//
// The parser is safe for untrusted input: tags never construct Go types.
// Custom tags such as !reference are kept as their untagged value.
//
// Paths are colon-separated literal keys:
//   - Empty path "" -> decode entire document
//   - "build" -> doc["build"]
//   - ".base:variables" -> doc[".base"]["variables"]
package yaml
