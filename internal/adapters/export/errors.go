package export

import "errors"

// ErrNilReport is returned when an export is asked to render nothing.
var ErrNilReport = errors.New("nil report")
