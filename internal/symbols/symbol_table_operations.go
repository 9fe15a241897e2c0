package symbols

import (
	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/typesystem"
)

// NewSymbolTable returns an empty table. It cannot be used until a level is
// pushed or adopted.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// IsEmpty reports whether the table has no levels at all.
func (t *SymbolTable) IsEmpty() bool { return len(t.levels) == 0 }

// CurrentLevel returns the index of the innermost level, -1 when empty.
func (t *SymbolTable) CurrentLevel() int { return len(t.levels) - 1 }

// Depth returns the number of levels.
func (t *SymbolTable) Depth() int { return len(t.levels) }

// Level returns the level at index i.
func (t *SymbolTable) Level(i int) *Level { return t.levels[i] }

// AdoptedLevels returns how many bottom levels are shared built-ins.
func (t *SymbolTable) AdoptedLevels() int { return t.adoptedLevels }

// IDs exposes the table's id counter.
func (t *SymbolTable) IDs() *IDCounter { return &t.ids }

// MaxSymbolID returns the last id assigned by this table.
func (t *SymbolTable) MaxSymbolID() int { return t.ids.Current() }

// SetNoBuiltInRedeclarations makes user globals that reuse a built-in
// function name fail to insert.
func (t *SymbolTable) SetNoBuiltInRedeclarations() { t.noBuiltInRedeclarations = true }

func (t *SymbolTable) AtSharedBuiltInLevel() bool  { return len(t.levels) == config.SharedBuiltInLevel+1 }
func (t *SymbolTable) AtDynamicBuiltInLevel() bool { return len(t.levels) == config.DynamicBuiltInLevel+1 }
func (t *SymbolTable) AtBuiltInLevel() bool        { return t.AtSharedBuiltInLevel() || t.AtDynamicBuiltInLevel() }
func (t *SymbolTable) AtGlobalLevel() bool         { return len(t.levels) <= config.GlobalLevel+1 }

// PushLevel opens a new innermost scope.
func (t *SymbolTable) PushLevel() {
	t.levels = append(t.levels, NewLevel())
}

// PopLevel discards the innermost scope and every symbol it owns. When the
// scope saved default precisions they are restored into precisions.
func (t *SymbolTable) PopLevel(precisions []typesystem.PrecisionQualifier) {
	top := t.CurrentLevel()
	if top < t.adoptedLevels {
		panic("PopLevel: cannot pop an adopted level")
	}
	t.levels[top].PreviousDefaultPrecisions(precisions)
	t.levels[top] = nil
	t.levels = t.levels[:top]
}

// SetPreviousDefaultPrecisions saves p in the innermost level the first
// time it is called for that level.
func (t *SymbolTable) SetPreviousDefaultPrecisions(p []typesystem.PrecisionQualifier) {
	t.levels[t.CurrentLevel()].SetPreviousDefaultPrecisions(p)
}

// Insert gives sym a fresh id and adds it to the innermost level.
func (t *SymbolTable) Insert(sym Symbol) error {
	if t.IsEmpty() {
		panic("Insert: symbol table has no levels")
	}
	top := t.CurrentLevel()
	current := t.levels[top]
	if current.IsFrozen() {
		return &ReadOnlyError{Op: "insert", Name: sym.Name()}
	}

	sym.SetUniqueID(t.ids.Next())
	name := sym.Name()

	// a variable may not reuse the name of a function of the same scope
	if _, isFunction := sym.(*Function); !isFunction && name != "" && current.HasFunctionName(name) {
		return &RedefinitionError{Name: name}
	}

	if t.noBuiltInRedeclarations && t.AtGlobalLevel() && top > config.SharedBuiltInLevel {
		if t.levels[config.SharedBuiltInLevel].HasFunctionName(name) {
			return &BuiltInRedeclarationError{Name: name}
		}
		if top > config.DynamicBuiltInLevel && t.levels[config.DynamicBuiltInLevel].HasFunctionName(name) {
			return &BuiltInRedeclarationError{Name: name}
		}
	}

	return current.Insert(sym)
}

// Scope describes where a lookup found its symbol.
type Scope struct {
	Level        int
	BuiltIn      bool // found in an adopted level
	CurrentScope bool // found in the innermost level
}

// FindWithScope searches from the innermost level outwards and returns the
// first match together with where it was found.
func (t *SymbolTable) FindWithScope(name string) (Symbol, Scope, bool) {
	for level := t.CurrentLevel(); level >= 0; level-- {
		if sym, ok := t.levels[level].Find(name); ok {
			return sym, Scope{
				Level:        level,
				BuiltIn:      level < t.adoptedLevels,
				CurrentScope: level == t.CurrentLevel(),
			}, true
		}
	}
	return nil, Scope{Level: -1}, false
}

// Find returns the innermost symbol stored under name.
func (t *SymbolTable) Find(name string) (Symbol, bool) {
	sym, _, ok := t.FindWithScope(name)
	return sym, ok
}

// Resolve is Find reporting absence as *typesystem.SymbolNotFoundError, for
// callers that turn it into an undeclared identifier diagnostic.
func (t *SymbolTable) Resolve(name string) (Symbol, error) {
	sym, ok := t.Find(name)
	if !ok {
		return nil, typesystem.NewSymbolNotFoundError(name)
	}
	return sym, nil
}

// IsFunctionNameVariable reports whether the innermost declaration of name
// is a variable rather than a set of function overloads.
func (t *SymbolTable) IsFunctionNameVariable(name string) bool {
	for level := t.CurrentLevel(); level >= 0; level-- {
		if found, variable := t.levels[level].FindFunctionVariableName(name); found {
			return variable
		}
	}
	return false
}

// FindFunctionNameList collects the overloads of name. User levels hide each
// other, so the innermost user level with a match wins; built-in levels do
// not hide each other and are gathered together. builtIn reports which case
// produced the list.
func (t *SymbolTable) FindFunctionNameList(name string) (list []*Function, builtIn bool) {
	level := t.CurrentLevel()
	for ; level >= t.adoptedLevels; level-- {
		list = append(list, t.levels[level].FindOverloads(name)...)
		if len(list) > 0 {
			return list, false
		}
	}
	for ; level >= 0; level-- {
		list = append(list, t.levels[level].FindOverloads(name)...)
	}
	return list, len(list) > 0
}
