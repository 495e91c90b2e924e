package dataset

import (
	"errors"
	"fmt"
)

// ErrLoad is matched by every LoadError via errors.Is.
var ErrLoad = errors.New("dataset load failed")

// LoadError reports a failed dataset load: missing file, unreadable source,
// malformed header or row.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Source, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }
