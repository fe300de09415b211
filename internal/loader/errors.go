package loader

import "errors"

var (
	// ErrNoModels is returned by New when no schema-module directory is configured.
	ErrNoModels = errors.New("loader: schema-module directory is required")

	// ErrNoDataDir is returned by New when no data directory is configured.
	ErrNoDataDir = errors.New("loader: data directory is required")

	// ErrNoRegistry is returned by New when no schema registry is configured.
	ErrNoRegistry = errors.New("loader: schema registry is required")

	// ErrNotCached is recorded for a discovered component with no cache entry.
	ErrNotCached = errors.New("loader: component not in cache")
)
