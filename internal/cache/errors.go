package cache

import "errors"

var (
	// ErrReadFailed is returned when a data file cannot be read, e.g. it vanished after discovery.
	ErrReadFailed = errors.New("cache: read failed")

	// ErrMalformed is returned when a data file is not valid JSON.
	ErrMalformed = errors.New("cache: malformed data")
)
