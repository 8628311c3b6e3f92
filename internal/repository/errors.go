package repository

import "errors"

// ErrStaleWrite is returned by versioned updates when the row changed (or
// disappeared) since it was read.
var ErrStaleWrite = errors.New("stale write: record was modified concurrently")
