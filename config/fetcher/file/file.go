package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileNotFound is returned when the path is missing or cannot be read.
var ErrFileNotFound = errors.New("file not found or not readable")

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher interface for file-based documents.
// It reads the file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// with the specified filepath. The file is read at construction time and cached.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		data, err := readFile(cleanPath)
		if err != nil {
			return nil, err
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

func readFile(path string) (data []byte, err error) {
	handle, err := os.Open(path) // #nosec G304 -- reading the user-supplied file is the point
	if err != nil {
		return nil, openError(path, err)
	}

	defer func() {
		closeErr := handle.Close()
		if closeErr != nil && err == nil {
			err = fmt.Errorf("closing file %q: %w", path, closeErr)
		}
	}()

	stat, err := handle.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w: %w", path, ErrFileNotFound, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w: %w", path, ErrFileNotFound, ErrPathIsDirectory)
	}

	data, err = io.ReadAll(handle)
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", path, err)
	}

	return data, nil
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("open file %q: %w: %w", path, ErrFileNotFound, err)
	}

	return fmt.Errorf("open file %q: %w", path, err)
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the cached data that was read at construction time.
// A copy is returned to prevent callers from mutating the cached data.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
