package source

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrMissingColumn     = errors.New("missing required column")
	ErrMalformedRow      = errors.New("malformed row")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmpty             = errors.New("no header row")
)
