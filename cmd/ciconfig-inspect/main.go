// Command ciconfig-inspect prints the top-level keys of a CI configuration file.
package main

import (
	"fmt"
	"os"

	inspect "github.com/0xalexb/ciconfig-inspect"
	"github.com/0xalexb/ciconfig-inspect/inspector"
	"github.com/0xalexb/ciconfig-inspect/logging"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

type flags struct {
	section   string
	backend   string
	logLevel  string
	logFormat string
}

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts flags

	cmd := &cobra.Command{
		Use:   "ciconfig-inspect [file]",
		Short: "Print the top-level keys of a YAML file",
		Long: "Parses a YAML file (" + inspector.DefaultPath + " by default) and prints every\n" +
			"top-level key followed by its value. Any load or parse failure exits non-zero.",
		Version:       fmt.Sprintf("%s (compiled %s)", inspect.Version, inspect.CompiledAt),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inspector.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}

			return run(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.section, "section", "s", "", "colon-separated path of the mapping to print, e.g. build:variables")
	cmd.Flags().StringVar(&opts.backend, "parser", inspector.BackendGoccy, "parser backend: goccy or yaml.v3")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", logging.FormatJSON, "log format: json or text")

	return cmd
}

func run(cmd *cobra.Command, path string, opts flags) error {
	app := inspect.NewApp(
		inspect.WithLogLevel(opts.logLevel),
		inspect.WithLogFormat(opts.logFormat),
		inspect.WithLogWriter(cmd.ErrOrStderr()),
		inspect.WithOutput(cmd.OutOrStdout()),
		inspect.WithInspection(path,
			inspector.WithSection(opts.section),
			inspector.WithBackend(opts.backend),
		),
	)

	return app.Execute(cmd.Context())
}

// formatError renders goccy syntax errors with their source excerpt.
func formatError(err error) string {
	return "error: " + yaml.FormatError(err, false, true)
}

