package discovery

import "errors"

var (
	// ErrMissingDataFile is recorded when a component has no data file.
	ErrMissingDataFile = errors.New("discovery: data file not found")

	// ErrNameCollision is recorded when two module files derive the same component name.
	ErrNameCollision = errors.New("discovery: component name collision")
)
