// symbols/symbol_table.go - Main symbol table entry point
//
// The package is split into focused files:
// - symbol_table_core.go: Symbol interface, kinds, shared symbol state
// - symbol_table_symbols.go: Variable, Function and AnonMember
// - symbol_table_operators.go: built-in operator tags
// - symbol_table_level.go: Level, one lexical scope keyed by mangled name
// - symbol_table_advanced.go: SymbolTable struct definition and id counter
// - symbol_table_operations.go: push/pop, insert and lookup
// - symbol_table_init.go: adoption of shared built-in levels and table copies
// - symbol_table_ext.go: extension tagging and operator relations
// - symbol_table_dump.go: diagnostic listings

package symbols
