package sqlite

import "errors"

// ErrNotFound is returned when a requested dataset doesn't exist in the catalog.
var ErrNotFound = errors.New("not found")
