package contract

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an author or snapshot does not exist.
var ErrNotFound = errors.New("not found")

// ErrStale marks a response that was superseded by a newer request.
// It is a discard signal and never shown to users.
var ErrStale = errors.New("stale response")

// FetchFailure describes a failed fetch: transport error, timeout or non-2xx status.
type FetchFailure struct {
	URL    string
	Status int // HTTP status, 0 when no response arrived
	Err    error
}

func (f *FetchFailure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", f.URL, f.Status)
	}
	return fmt.Sprintf("fetch %s: %v", f.URL, f.Err)
}

func (f *FetchFailure) Unwrap() error {
	return f.Err
}

// IsNotFound reports whether the failure carries a 404 status.
func (f *FetchFailure) IsNotFound() bool {
	return f.Status == 404
}
