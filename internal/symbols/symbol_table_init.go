package symbols

import "fmt"

// Adopt freezes every level of the table and makes them all shared: tables
// derived from this one reference them instead of copying them.
func (t *SymbolTable) Adopt() {
	for _, l := range t.levels {
		l.Freeze()
	}
	t.adoptedLevels = len(t.levels)
}

// AdoptLevels places every level of shared at the bottom of t by reference.
// The levels are frozen first, so no table can change them afterwards. t
// continues shared's id sequence and redeclaration policy.
func (t *SymbolTable) AdoptLevels(shared *SymbolTable) {
	if len(t.levels) != t.adoptedLevels {
		panic(fmt.Sprintf("AdoptLevels: table already has %d private levels", len(t.levels)-t.adoptedLevels))
	}
	for _, l := range shared.levels {
		l.Freeze()
		t.levels = append(t.levels, l)
		t.adoptedLevels++
	}
	t.ids = shared.ids
	t.noBuiltInRedeclarations = shared.noBuiltInRedeclarations
}

// CopyTable appends deep copies of the private levels of other to t. Both
// tables must already share the very same adopted levels.
func (t *SymbolTable) CopyTable(other *SymbolTable) {
	if t.adoptedLevels != other.adoptedLevels {
		panic(fmt.Sprintf("CopyTable: adopted levels differ: %d != %d", t.adoptedLevels, other.adoptedLevels))
	}
	if len(t.levels) != t.adoptedLevels {
		panic("CopyTable: destination already has private levels")
	}
	for i := 0; i < t.adoptedLevels; i++ {
		if t.levels[i] != other.levels[i] {
			panic(fmt.Sprintf("CopyTable: adopted level %d is not shared with the source", i))
		}
	}

	t.ids = other.ids
	t.noBuiltInRedeclarations = other.noBuiltInRedeclarations
	for _, l := range other.levels[other.adoptedLevels:] {
		t.levels = append(t.levels, l.Clone())
	}
}

// Clone returns a table sharing t's adopted levels and holding deep copies
// of all the others.
func (t *SymbolTable) Clone() *SymbolTable {
	c := NewSymbolTable()
	c.levels = append(make([]*Level, 0, len(t.levels)), t.levels[:t.adoptedLevels]...)
	c.adoptedLevels = t.adoptedLevels
	c.CopyTable(t)
	return c
}

// ReadOnly freezes every level of the table.
func (t *SymbolTable) ReadOnly() {
	for _, l := range t.levels {
		l.Freeze()
	}
}
