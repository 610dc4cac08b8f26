package contract

import "sync/atomic"

// Sequence issues monotonically increasing request numbers. A response is
// applied only when its number is still the latest one issued.
type Sequence struct {
	n atomic.Uint64
}

// Next issues a new request number and makes it the latest.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// Latest returns the most recently issued number.
func (s *Sequence) Latest() uint64 {
	return s.n.Load()
}

// IsLatest reports whether seq has not been superseded.
func (s *Sequence) IsLatest(seq uint64) bool {
	return seq == s.Latest()
}
