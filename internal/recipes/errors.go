// Package recipes loads crafting-table recipe documents and decodes their ingredient slots.
package recipes

import "fmt"

// LoadError represents an error during file I/O or JSON parsing
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// MalformedIngredientError is returned when an ingredient slot does not name
// exactly one discriminator (item or tag) or has an unexpected shape.
type MalformedIngredientError struct {
	Path    string // recipe file
	Slot    string // key letter for shaped recipes, position for shapeless
	Message string
}

func (e *MalformedIngredientError) Error() string {
	return fmt.Sprintf("malformed ingredient in %s (slot %s): %s", e.Path, e.Slot, e.Message)
}
