package symbols

import (
	"io"
)

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	AnonMemberSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case FunctionSymbol:
		return "function"
	case AnonMemberSymbol:
		return "anonymous member"
	default:
		return "unknown"
	}
}

// Symbol is a declared name: a *Variable, *Function or *AnonMember.
type Symbol interface {
	Name() string
	// MangledName is the key the symbol is stored under in a Level: the
	// overload key for functions, the plain name otherwise.
	MangledName() string
	Kind() SymbolKind
	UniqueID() int
	SetUniqueID(id int)
	Extensions() []string
	SetExtensions(exts []string)
	IsWritable() bool
	MakeReadOnly()
	// Clone returns a writable copy with independent storage and the same id.
	Clone() Symbol
	Dump(w io.Writer)

	base() *symbolBase
}

type symbolBase struct {
	name       string
	uniqueID   int
	extensions []string
	readOnly   bool
}

func (s *symbolBase) base() *symbolBase { return s }

func (s *symbolBase) Name() string          { return s.name }
func (s *symbolBase) UniqueID() int         { return s.uniqueID }
func (s *symbolBase) SetUniqueID(id int)    { s.uniqueID = id }
func (s *symbolBase) Extensions() []string { return s.extensions }
func (s *symbolBase) IsWritable() bool      { return !s.readOnly }

// SetExtensions records the extensions required to use the symbol.
func (s *symbolBase) SetExtensions(exts []string) {
	if s.readOnly {
		panic("SetExtensions: symbol " + s.name + " is read-only")
	}
	s.extensions = append([]string(nil), exts...)
}

func (s *symbolBase) changeName(name string) { s.name = name }

// cloneBase copies everything but writability; a copy is always writable.
func (s *symbolBase) cloneBase() symbolBase {
	c := symbolBase{name: s.name, uniqueID: s.uniqueID}
	if s.extensions != nil {
		c.extensions = append([]string(nil), s.extensions...)
	}
	return c
}
