package symbols

// SymbolTable is the stack of scope levels of one compilation: shared
// built-in levels at the bottom, then user globals, then nested blocks.
//
// The bottom adoptedLevels levels are shared by reference with other tables
// and are frozen; only the levels above them belong to this table.
type SymbolTable struct {
	levels []*Level

	// ids hands out symbol ids; copied along with the table so that copies
	// continue the sequence of their source.
	ids IDCounter

	noBuiltInRedeclarations bool
	adoptedLevels           int
}

// IDCounter is a monotonic source of symbol ids for one compilation session.
type IDCounter struct {
	last int
}

// Next returns a fresh id; the first is 1.
func (c *IDCounter) Next() int {
	c.last++
	return c.last
}

// Current returns the last id handed out.
func (c *IDCounter) Current() int { return c.last }

// Reset restarts the sequence at start+1.
func (c *IDCounter) Reset(start int) { c.last = start }
