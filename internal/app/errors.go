package service

import (
	"errors"
	"fmt"
)

// ErrNotStarted is returned when the service is used before Start.
var ErrNotStarted = errors.New("service not started")

// RecordError reports the record that failed a batch under the fail policy.
type RecordError struct {
	Index int    // position in the request
	ID    string // record identity
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
