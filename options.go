package inspect

import (
	"io"

	"github.com/0xalexb/ciconfig-inspect/inspector"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	LogWriter io.Writer
	Output    io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithInspection adds a module that reports the top-level keys of the YAML file at path.
func WithInspection(path string, opts ...inspector.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, inspector.NewModule(path, opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log format, "json" (default) or "text".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogWriter sets where logs go. Defaults to os.Stderr.
func WithLogWriter(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogWriter = w
	}
}

// WithOutput sets where the report is written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.Output = w
	}
}
