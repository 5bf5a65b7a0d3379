// Package candidates turns decoded recipes into the candidate item sets the
// cover solver chooses from.
package candidates

import "fmt"

// CombinationLimitError is returned when a recipe admits more ingredient
// combinations than the configured limit.
type CombinationLimitError struct {
	Recipe       string
	Combinations int
	Limit        int
}

func (e *CombinationLimitError) Error() string {
	return fmt.Sprintf("recipe %s admits %d combinations, limit is %d", e.Recipe, e.Combinations, e.Limit)
}

// BuildError wraps a failure while expanding a recipe's ingredient slots
type BuildError struct {
	Recipe  string
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("build error: recipe %s: %s: %v", e.Recipe, e.Message, e.Cause)
	}
	return fmt.Sprintf("build error: recipe %s: %s", e.Recipe, e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}
