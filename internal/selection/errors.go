// Package selection provides the greedy set-cover solver that picks candidate sets until the target universe is covered.
package selection

import (
	"fmt"
	"strings"
)

// Error represents an error that occurs during cover selection
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// InvalidCandidateError is returned before solving when a candidate holds no items.
type InvalidCandidateError struct {
	Index int
}

func (e *InvalidCandidateError) Error() string {
	return fmt.Sprintf("invalid candidate at index %d: candidate set is empty", e.Index)
}

// NoFeasibleCoverError is returned when the candidates cannot jointly cover the universe.
type NoFeasibleCoverError struct {
	Missing []string // universe elements no remaining candidate can cover
	Chosen  int      // sets chosen before the solver ran out of options
}

func (e *NoFeasibleCoverError) Error() string {
	return fmt.Sprintf("no feasible cover: %d element(s) cannot be covered after %d set(s): %s",
		len(e.Missing), e.Chosen, strings.Join(e.Missing, ", "))
}
