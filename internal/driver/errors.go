package driver

import "errors"

// ErrNotIdle indicates SpMV or SpMVMeasurementOnce was called while a
// previous iteration had not returned to IDLE; concurrent iterations on
// the same process are never allowed.
var ErrNotIdle = errors.New("driver: iteration already in flight")
