package symbols

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnly is matched by every error returned for a mutation of a frozen level.
	ErrReadOnly = errors.New("scope level is read-only")
	// ErrRedefinition is matched by every rejected insertion.
	ErrRedefinition = errors.New("redefinition")
)

// ReadOnlyError reports an attempt to change a frozen (shared) level.
type ReadOnlyError struct {
	Op   string
	Name string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, ErrReadOnly)
}

func (e *ReadOnlyError) Unwrap() error { return ErrReadOnly }

// RedefinitionError reports a name already declared in the same level.
type RedefinitionError struct {
	Name string
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrRedefinition, e.Name)
}

func (e *RedefinitionError) Unwrap() error { return ErrRedefinition }

// BuiltInRedeclarationError reports a user global that overloads or hides a
// built-in function while built-in redeclaration is disabled.
type BuiltInRedeclarationError struct {
	Name string
}

func (e *BuiltInRedeclarationError) Error() string {
	return fmt.Sprintf("%v of built-in function: %s", ErrRedefinition, e.Name)
}

func (e *BuiltInRedeclarationError) Unwrap() error { return ErrRedefinition }
