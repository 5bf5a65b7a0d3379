// Package tags resolves item tags into the concrete items they stand for,
// following nested tag references.
package tags

import (
	"fmt"
	"strings"
)

// CycleError is returned when a tag references itself, directly or through other tags.
type CycleError struct {
	Path []string // the chain of tags, first and last entries are the same tag
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("tag cycle detected: %s", strings.Join(e.Path, " -> "))
}

// TagNotFoundError is returned when no document exists for a tag.
type TagNotFoundError struct {
	Tag  string
	Path string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag %s not found (looked for %s)", e.Tag, e.Path)
}

// ResolveError represents an error reading or decoding a tag document
type ResolveError struct {
	Tag     string
	Message string
	Cause   error
}

func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resolve error: tag %s: %s: %v", e.Tag, e.Message, e.Cause)
	}
	return fmt.Sprintf("resolve error: tag %s: %s", e.Tag, e.Message)
}

func (e *ResolveError) Unwrap() error {
	return e.Cause
}
