package symbols

import (
	"io"
	"strconv"
	"strings"

	"github.com/google/btree"

	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/typesystem"
)

const levelDegree = 8

type levelEntry struct {
	key string
	sym Symbol
}

func entryLess(a, b levelEntry) bool { return a.key < b.key }

// Level is one lexical scope. Symbols are kept ordered by key so that all
// overloads of a function, keyed "name(...", form one contiguous range.
// A Level owns every symbol inserted into it and every anonymous block
// container whose members it exposes.
type Level struct {
	entries    *btree.BTreeG[levelEntry]
	containers []*Variable // indexed by anonymous id

	// defaults to restore when the level is popped; nil until saved
	defaultPrecision []typesystem.PrecisionQualifier
	frozen           bool
}

// NewLevel returns an empty, writable level.
func NewLevel() *Level {
	return &Level{entries: btree.NewG(levelDegree, entryLess)}
}

// Len returns the number of keyed entries.
func (l *Level) Len() int { return l.entries.Len() }

// IsFrozen reports whether Freeze has been called.
func (l *Level) IsFrozen() bool { return l.frozen }

// Insert adds sym under its mangled name.
//
// An empty name marks an anonymous block container: it gets a generated name
// and each of its fields is exposed as an AnonMember; a field named like a
// variable or function of the level is not exposed. A function is refused
// when a variable of the same name exists; re-declaring an existing overload
// is accepted and keeps the first declaration. Any other duplicate key is a
// *RedefinitionError.
func (l *Level) Insert(sym Symbol) error {
	if l.frozen {
		return &ReadOnlyError{Op: "insert", Name: sym.Name()}
	}

	name := sym.Name()
	if name == "" {
		container, ok := sym.(*Variable)
		if !ok || !container.typ.IsStruct() {
			panic("Insert: anonymous symbol is not a block variable")
		}
		return l.insertAnonymous(container)
	}

	key := sym.MangledName()
	if _, isFunction := sym.(*Function); isFunction {
		if l.entries.Has(levelEntry{key: name}) {
			return &RedefinitionError{Name: name}
		}
		if !l.entries.Has(levelEntry{key: key}) {
			l.entries.ReplaceOrInsert(levelEntry{key: key, sym: sym})
		}
		return nil
	}

	if l.entries.Has(levelEntry{key: key}) {
		return &RedefinitionError{Name: key}
	}
	l.entries.ReplaceOrInsert(levelEntry{key: key, sym: sym})
	return nil
}

func (l *Level) insertAnonymous(container *Variable) error {
	anonID := len(l.containers)
	container.changeName(config.AnonymousPrefix + strconv.Itoa(anonID))
	l.containers = append(l.containers, container)

	var err error
	for i, f := range container.typ.Fields {
		member := newAnonMember(f.Name, i, container, anonID)
		if l.entries.Has(levelEntry{key: member.name}) || l.HasFunctionName(member.name) {
			if err == nil {
				err = &RedefinitionError{Name: member.name}
			}
			continue
		}
		l.entries.ReplaceOrInsert(levelEntry{key: member.name, sym: member})
	}
	return err
}

// Find returns the symbol stored under exactly name.
func (l *Level) Find(name string) (Symbol, bool) {
	e, ok := l.entries.Get(levelEntry{key: name})
	if !ok {
		return nil, false
	}
	return e.sym, true
}

// overloadRange returns the bounds of the keys "base(" .. "base)"; ')' sorts
// right after '(' so the range holds exactly the overloads of base.
func overloadRange(name string) (string, string) {
	if paren := strings.IndexByte(name, '('); paren >= 0 {
		name = name[:paren]
	}
	return name + "(", name + ")"
}

func (l *Level) eachOverload(name string, fn func(f *Function)) {
	lo, hi := overloadRange(name)
	l.entries.AscendRange(levelEntry{key: lo}, levelEntry{key: hi}, func(e levelEntry) bool {
		if f, ok := e.sym.(*Function); ok {
			fn(f)
		}
		return true
	})
}

// FindOverloads returns every overload of a function in key order. name may
// be the base name or any mangled call key ("foo(vf3;").
func (l *Level) FindOverloads(name string) []*Function {
	var list []*Function
	l.eachOverload(name, func(f *Function) { list = append(list, f) })
	return list
}

// HasFunctionName reports whether some overload of name is declared here.
func (l *Level) HasFunctionName(name string) bool {
	found, variable := l.FindFunctionVariableName(name)
	return found && !variable
}

// FindFunctionVariableName looks at the first key not before name: it is
// either an overload of name, the variable name itself, or unrelated.
func (l *Level) FindFunctionVariableName(name string) (found, variable bool) {
	l.entries.AscendGreaterOrEqual(levelEntry{key: name}, func(e levelEntry) bool {
		if paren := strings.IndexByte(e.key, '('); paren >= 0 && e.key[:paren] == name {
			found = true
		} else if e.key == name {
			found, variable = true, true
		}
		return false
	})
	return found, variable
}

// SetFunctionExtensions makes every overload of name require exts. It is
// meant for building the built-in level of a version that needs them.
func (l *Level) SetFunctionExtensions(name string, exts []string) error {
	if l.frozen {
		return &ReadOnlyError{Op: "set extensions", Name: name}
	}
	l.eachOverload(name, func(f *Function) { f.SetExtensions(exts) })
	return nil
}

// RelateToOperator ties every overload of name to op.
func (l *Level) RelateToOperator(name string, op Operator) error {
	if l.frozen {
		return &ReadOnlyError{Op: "relate to operator", Name: name}
	}
	l.eachOverload(name, func(f *Function) { f.RelateToOperator(op) })
	return nil
}

// Freeze makes every symbol read-only and the level refuse further changes.
// It cannot be undone.
func (l *Level) Freeze() {
	if l.frozen {
		return
	}
	l.entries.Ascend(func(e levelEntry) bool {
		e.sym.MakeReadOnly()
		return true
	})
	for _, c := range l.containers {
		c.MakeReadOnly()
	}
	l.frozen = true
}

// Clone deep-copies the level. Each anonymous container is copied once and
// its members are rebuilt around that copy. Entries are copied as stored,
// without re-applying insertion rules. The clone is writable even if l is
// frozen.
func (l *Level) Clone() *Level {
	c := NewLevel()
	c.containers = make([]*Variable, len(l.containers))
	for i, container := range l.containers {
		c.containers[i] = container.Clone().(*Variable)
	}
	l.entries.Ascend(func(e levelEntry) bool {
		var sym Symbol
		if member, ok := e.sym.(*AnonMember); ok {
			sym = &AnonMember{
				symbolBase: member.cloneBase(),
				container:  c.containers[member.anonID],
				member:     member.member,
				anonID:     member.anonID,
			}
		} else {
			sym = e.sym.Clone()
		}
		if _, dup := c.entries.ReplaceOrInsert(levelEntry{key: e.key, sym: sym}); dup {
			panic("Clone: duplicate key " + e.key)
		}
		return true
	})
	if l.defaultPrecision != nil {
		c.defaultPrecision = append([]typesystem.PrecisionQualifier(nil), l.defaultPrecision...)
	}
	return c
}

// Symbols returns the keyed symbols in key order.
func (l *Level) Symbols() []Symbol {
	list := make([]Symbol, 0, l.entries.Len())
	l.entries.Ascend(func(e levelEntry) bool {
		list = append(list, e.sym)
		return true
	})
	return list
}

// Keys returns the keys in order.
func (l *Level) Keys() []string {
	keys := make([]string, 0, l.entries.Len())
	l.entries.Ascend(func(e levelEntry) bool {
		keys = append(keys, e.key)
		return true
	})
	return keys
}

// Containers returns the anonymous block containers owned by the level.
func (l *Level) Containers() []*Variable { return l.containers }

// SetPreviousDefaultPrecisions saves p the first time a precision statement
// is seen in this scope; the saved values are what to restore on pop.
func (l *Level) SetPreviousDefaultPrecisions(p []typesystem.PrecisionQualifier) {
	if l.defaultPrecision != nil || p == nil {
		return
	}
	l.defaultPrecision = append([]typesystem.PrecisionQualifier(nil), p...)
}

// PreviousDefaultPrecisions copies the saved defaults into p, if any were saved.
func (l *Level) PreviousDefaultPrecisions(p []typesystem.PrecisionQualifier) {
	if l.defaultPrecision == nil || p == nil {
		return
	}
	copy(p, l.defaultPrecision)
}

// Dump writes one line per symbol in key order.
func (l *Level) Dump(w io.Writer) {
	l.entries.Ascend(func(e levelEntry) bool {
		e.sym.Dump(w)
		return true
	})
}
