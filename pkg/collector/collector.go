// Package collector hands out the tags correlating downstream runs with their plan.
package collector

import "go.uber.org/atomic"

// Sequence numbers the downstream runs of one plan, starting at 1.
type Sequence struct {
	last atomic.Int32
}

// NewSequence returns a sequence whose first tag is 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next tag.
func (s *Sequence) Next() int {
	return int(s.last.Inc())
}
