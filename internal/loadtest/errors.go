package loadtest

import "errors"

// Error constants.
var (
	ErrUnhealthy        = errors.New("service is not healthy")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrInconsistent     = errors.New("inconsistent report")
	ErrBatchesFailed    = errors.New("batches failed")
)
