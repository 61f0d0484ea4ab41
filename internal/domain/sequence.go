package domain

// Sequence issues strictly increasing identifiers starting at 1. It is
// deliberately not safe for concurrent use: the engine that owns it
// serializes all submissions, and keeping the counter instance-scoped
// (rather than a package global) keeps engines independently testable
// and resettable.
type Sequence struct {
	last uint64
}

// Next returns the next value in the sequence.
func (s *Sequence) Next() uint64 {
	s.last++
	return s.last
}

// Current returns the most recently issued value, or 0 if none.
func (s *Sequence) Current() uint64 {
	return s.last
}
