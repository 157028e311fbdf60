// Package id hands out identifiers: monotonic integer sequences for catalog
// and order entities, and random UUIDs for session correlation.
package id

import "github.com/google/uuid"

// Sequence yields 1, 2, 3, ... for the lifetime of the process. Values are
// never reused and there is no reset.
type Sequence struct {
	last int64
}

// NewSequence returns a sequence whose first Next is 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next advances the sequence and returns the new value.
func (s *Sequence) Next() int64 {
	s.last++
	return s.last
}

type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator { return UUIDGenerator{} }

func (UUIDGenerator) NewID() string { return uuid.NewString() }
