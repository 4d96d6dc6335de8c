package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/ciconfig-inspect/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for an inspection using Fx.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	logWriter := options.LogWriter
	if logWriter == nil {
		logWriter = os.Stderr
	}

	output := options.Output
	if output == nil {
		output = os.Stdout
	}

	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}
	logger := logging.NewLogger(loggerConfig, logWriter)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return newEventLogger(logger)
		}),
		fx.Supply(loggerConfig),
		fx.Supply(logger),
		fx.Provide(func() io.Writer { return output }),
		fx.Options(options.Modules...),
	)
}

// Start starts the Fx application. Inspection modules run their report here.
func (app *App) Start(ctx context.Context) error {
	if app != nil && app.app != nil {
		err := app.app.Start(ctx)
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Stop stops the Fx application gracefully.
func (app *App) Stop(ctx context.Context) error {
	if app != nil && app.app != nil {
		err := app.app.Stop(ctx)
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Execute starts and then stops the application.
// A failed start is rolled back by Fx, so Stop only runs after a successful Start.
func (app *App) Execute(ctx context.Context) error {
	err := app.Start(ctx)
	if err != nil {
		return err
	}

	return app.Stop(ctx)
}

// newEventLogger logs every Fx event at debug level, errors included.
// A failed start is reported once by the caller, not again by Fx.
func newEventLogger(logger *slog.Logger) *fxevent.SlogLogger {
	eventLogger := &fxevent.SlogLogger{Logger: logger}
	eventLogger.UseLogLevel(slog.LevelDebug)
	eventLogger.UseErrorLevel(slog.LevelDebug)

	return eventLogger
}
