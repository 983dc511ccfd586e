package scoring

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyPopulation = errors.New("empty population")
	ErrInvalidRules    = errors.New("invalid scoring rules")
)
