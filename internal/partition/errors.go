package partition

import "errors"

// ErrInvalidPartCount indicates P < 2 was requested; this is fatal.
var ErrInvalidPartCount = errors.New("partition: P must be at least 2")
