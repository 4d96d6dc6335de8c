package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrParse is wrapped by parsers when the input is not valid YAML.
var ErrParse = errors.New("parse error")

// ErrPathNotFound is returned when the requested path does not exist in the document.
var ErrPathNotFound = errors.New("path not found")

// ErrMultipleDocuments is returned when the input holds more than one non-empty document.
var ErrMultipleDocuments = errors.New("expected a single document")

// Parser defines an interface for parsing YAML data into a target.
//
// The path parameter specifies a navigation path within the document
// using colon (:) as the separator for nested keys. For example:
//   - "build" navigates to doc["build"]
//   - "build:variables" navigates two levels deep
//   - "" (empty path) means parse the entire document
//
// Parsing into a *any target stores a document.Value, with mapping order kept
// and anchors, aliases and merge keys resolved.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading raw document data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads, parses, sets defaults, and validates data.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		data, err := dataSourcer.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		err = Prepare(target)
		if err != nil {
			return nil, err
		}

		return target, nil
	}
}

// Prepare applies defaults and then validation to target when it supports them.
func Prepare(target any) error {
	targetDefaulter, isDefaulter := target.(Defaulter)
	if isDefaulter {
		changed := targetDefaulter.SetDefaults()
		if changed {
			slog.Debug("defaults applied", slog.String("type", fmt.Sprintf("%T", target)))
		}
	}

	targetValidatable, isValidatable := target.(Validator)
	if isValidatable {
		err := targetValidatable.Validate()
		if err != nil {
			return fmt.Errorf("validating error: %w", err)
		}
	}

	return nil
}
