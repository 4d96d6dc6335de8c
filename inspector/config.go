// Package inspector loads a YAML document and prints its top-level keys.
package inspector

import (
	"errors"
	"fmt"
)

// Parser backends.
const (
	BackendGoccy  = "goccy"
	BackendYAMLv3 = "yaml.v3"
)

// DefaultPath is the file inspected when no path is given.
const DefaultPath = ".gitlab-ci.yml"

// ErrEmptyPath is returned when the module is created without a file path.
var ErrEmptyPath = errors.New("path must not be empty")

// ErrUnknownBackend is returned for an unsupported parser backend.
var ErrUnknownBackend = errors.New("unknown parser backend")

// Config holds the settings of an inspection.
type Config struct {
	// Section is a colon-separated path to the mapping to report. Empty means the whole document.
	Section string
	Backend string
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() bool {
	if c.Backend == "" {
		c.Backend = BackendGoccy

		return true
	}

	return false
}

// Validate validates the Config.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGoccy, BackendYAMLv3:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}
