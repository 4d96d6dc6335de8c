package inspector

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/0xalexb/ciconfig-inspect/config"
	"github.com/0xalexb/ciconfig-inspect/document"
)

// ErrWrite is returned when the report cannot be written.
var ErrWrite = errors.New("writing report")

// Inspector loads a YAML document and reports its top-level keys.
type Inspector struct {
	parser  config.Parser
	fetcher config.DataFetcher
	logger  *slog.Logger
	section string
}

// New creates an Inspector. A nil logger falls back to slog.Default.
func New(parser config.Parser, fetcher config.DataFetcher, logger *slog.Logger, section string) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}

	return &Inspector{
		parser:  parser,
		fetcher: fetcher,
		logger:  logger,
		section: section,
	}
}

// Load fetches and parses the document, or the mapping at the configured section.
func (ins *Inspector) Load() (*document.Document, error) {
	raw, err := config.Provider(new(any), ins.section)(ins.parser, ins.fetcher)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	doc, err := document.New(*raw)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	ins.logger.Debug("document loaded",
		slog.String("section", ins.section),
		slog.Int("keys", doc.Len()),
	)

	return doc, nil
}

// Report writes every top-level key followed by a colon, then the rendered
// value, then two blank lines. Keys are written in document order.
func (ins *Inspector) Report(w io.Writer, doc *document.Document) error {
	for key, value := range doc.All() {
		_, err := fmt.Fprintf(w, "%s:\n%s\n\n\n", key, value)
		if err != nil {
			return fmt.Errorf("%w: key %q: %w", ErrWrite, key, err)
		}
	}

	return nil
}

// Run loads the document and reports it to w. Nothing is written if loading fails.
func (ins *Inspector) Run(w io.Writer) error {
	doc, err := ins.Load()
	if err != nil {
		return err
	}

	return ins.Report(w, doc)
}
