// Package lending implements the per-book lending protocol: a book is either
// available or lent, and requests made while it is lent wait in a FIFO queue.
package lending

import "errors"

// ErrAlreadyAvailable is returned when returning a book nobody holds. It is
// informational and leaves the state unchanged.
var ErrAlreadyAvailable = errors.New("book already available")

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusLent      Status = "LENT"
)

// Outcome describes what a Lend or Return call did.
type Outcome string

const (
	OutcomeLent       Outcome = "LENT"
	OutcomeQueued     Outcome = "QUEUED"
	OutcomeHandedOver Outcome = "HANDED_OVER"
	OutcomeReturned   Outcome = "RETURNED"
)

// Result is the outcome of a transition. Position is the 1-based queue position
// for OutcomeQueued. Holder is the borrower after the transition and is nil
// once the book is available again.
type Result[T any] struct {
	Outcome  Outcome
	Position int
	Holder   *T
}

// State holds the lending status of one book. The zero value is an available
// book with an empty queue. A State is not safe for concurrent use.
type State[T any] struct {
	lent   bool
	holder *T
	queue  []T
}

func (s *State[T]) Status() Status {
	if s.lent {
		return StatusLent
	}
	return StatusAvailable
}

func (s *State[T]) Available() bool {
	return !s.lent
}

// Holder returns the current borrower.
func (s *State[T]) Holder() (T, bool) {
	if s.holder == nil {
		var zero T
		return zero, false
	}
	return *s.holder, true
}

func (s *State[T]) holderCopy() *T {
	if s.holder == nil {
		return nil
	}
	h := *s.holder
	return &h
}

// Queue returns a copy of the waiting requesters, oldest first.
func (s *State[T]) Queue() []T {
	out := make([]T, len(s.queue))
	copy(out, s.queue)
	return out
}

// Lend gives an available book to who. If the book is already lent, who joins
// the end of the queue; repeated requests from the same requester are queued
// again.
func (s *State[T]) Lend(who T) Result[T] {
	if !s.lent {
		s.lent = true
		s.holder = &who
		return Result[T]{Outcome: OutcomeLent, Holder: s.holderCopy()}
	}
	s.queue = append(s.queue, who)
	return Result[T]{Outcome: OutcomeQueued, Position: len(s.queue), Holder: s.holderCopy()}
}

// Return ends the current loan. With requesters waiting, the oldest one takes
// the book and it stays lent; otherwise the book becomes available.
func (s *State[T]) Return() (Result[T], error) {
	if !s.lent {
		return Result[T]{}, ErrAlreadyAvailable
	}
	if len(s.queue) > 0 {
		next := s.queue[0]
		var zero T
		s.queue[0] = zero
		s.queue = s.queue[1:]
		s.holder = &next
		return Result[T]{Outcome: OutcomeHandedOver, Holder: s.holderCopy()}, nil
	}
	s.lent = false
	s.holder = nil
	s.queue = nil
	return Result[T]{Outcome: OutcomeReturned}, nil
}
