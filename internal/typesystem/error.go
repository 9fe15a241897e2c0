package typesystem

import "fmt"

// SymbolNotFoundError indicates a symbol was not found
type SymbolNotFoundError struct {
	Name string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol not found: %s", e.Name)
}

func NewSymbolNotFoundError(name string) *SymbolNotFoundError {
	return &SymbolNotFoundError{Name: name}
}

// TypeNameError reports a spelling that does not name a type.
type TypeNameError struct {
	Spelling string
	Reason   string
}

func (e *TypeNameError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unknown type %q", e.Spelling)
	}
	return fmt.Sprintf("unknown type %q: %s", e.Spelling, e.Reason)
}
