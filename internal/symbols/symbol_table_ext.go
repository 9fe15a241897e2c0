package symbols

import "github.com/funvibe/glslsym/internal/typesystem"

// RelateToOperator ties every overload of name, in every writable level, to op.
// Frozen levels are left alone: they were related before they were shared.
func (t *SymbolTable) RelateToOperator(name string, op Operator) error {
	for _, l := range t.levels {
		if l.IsFrozen() {
			continue
		}
		if err := l.RelateToOperator(name, op); err != nil {
			return err
		}
	}
	return nil
}

// SetFunctionExtensions makes every overload of name, in every writable
// level, require exts.
func (t *SymbolTable) SetFunctionExtensions(name string, exts []string) error {
	for _, l := range t.levels {
		if l.IsFrozen() {
			continue
		}
		if err := l.SetFunctionExtensions(name, exts); err != nil {
			return err
		}
	}
	return nil
}

// SetVariableExtensions makes the innermost variable called name require exts.
func (t *SymbolTable) SetVariableExtensions(name string, exts []string) error {
	sym, scope, ok := t.FindWithScope(name)
	if !ok {
		return typesystem.NewSymbolNotFoundError(name)
	}
	if t.levels[scope.Level].IsFrozen() {
		return &ReadOnlyError{Op: "set extensions", Name: name}
	}
	sym.SetExtensions(exts)
	return nil
}
