package inspector

import (
	"context"
	"io"
	"log/slog"

	"github.com/0xalexb/ciconfig-inspect/config"
	filefetcher "github.com/0xalexb/ciconfig-inspect/config/fetcher/file"
	yamlparser "github.com/0xalexb/ciconfig-inspect/config/parser/yaml"
	"github.com/0xalexb/ciconfig-inspect/config/parser/yamlv3"

	"go.uber.org/fx"
)

// NewModule creates an Fx module that inspects the file at path when the app starts.
// It provides config.DataFetcher, config.Parser and *Inspector, and expects an
// io.Writer for the report and a *slog.Logger in the container.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(path string, opts ...Option) fx.Option {
	if path == "" {
		return fx.Error(ErrEmptyPath)
	}

	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	err := config.Prepare(&cfg)
	if err != nil {
		return fx.Error(err)
	}

	return fx.Module("inspector",
		fx.Supply(cfg),
		fx.Provide(
			fx.Annotate(
				filefetcher.NewFetcher(path),
				fx.As(new(config.DataFetcher)),
			),
		),
		fx.Provide(parserConstructor(cfg.Backend)),
		fx.Provide(func(parser config.Parser, fetcher config.DataFetcher, logger *slog.Logger, settings Config) *Inspector {
			return New(parser, fetcher, logger.With(slog.String("file", path)), settings.Section)
		}),
		fx.Invoke(func(lifecycle fx.Lifecycle, ins *Inspector, w io.Writer) {
			lifecycle.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					return ins.Run(w)
				},
			})
		}),
	)
}

func parserConstructor(backend string) any {
	if backend == BackendYAMLv3 {
		return fx.Annotate(yamlv3.NewParser, fx.As(new(config.Parser)))
	}

	return fx.Annotate(yamlparser.NewParser, fx.As(new(config.Parser)))
}
