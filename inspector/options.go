package inspector

// Option configures an inspection.
type Option func(*Config)

// WithSection restricts the report to the mapping at a colon-separated path.
func WithSection(section string) Option {
	return func(c *Config) {
		c.Section = section
	}
}

// WithBackend selects the parser backend, BackendGoccy or BackendYAMLv3.
func WithBackend(backend string) Option {
	return func(c *Config) {
		c.Backend = backend
	}
}
