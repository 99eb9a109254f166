package metrics

import "errors"

// ErrWriteFailed wraps failures to persist gathered metrics.
var ErrWriteFailed = errors.New("metrics write failed")
