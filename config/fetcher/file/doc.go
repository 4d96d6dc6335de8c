// Package file provides a file-based DataFetcher implementation for the config package.
//
// The file is opened once, read to the end and closed before the constructor
// returns, on every path. Subsequent calls to Fetch() return the cached bytes.
//
// Usage:
//
//	fetcher, err := file.NewFetcher(".gitlab-ci.yml")()
//	if err != nil {
//	    // errors.Is(err, file.ErrFileNotFound) for missing, unreadable or directory paths
//	}
//	data, err := fetcher.Fetch()
package file
