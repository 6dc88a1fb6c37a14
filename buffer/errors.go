package buffer

import "errors"

// ErrCapacityExceeded is returned when an append would exceed a fixed capacity.
var ErrCapacityExceeded = errors.New("capacity exceeded")
