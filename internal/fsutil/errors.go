package fsutil

import "errors"

var (
	// ErrEmptyPath is returned when a path argument is empty.
	ErrEmptyPath = errors.New("fsutil: empty path")

	// ErrNotDirectory is returned when a directory was expected.
	ErrNotDirectory = errors.New("fsutil: not a directory")
)
