package symbols

import (
	"fmt"
	"io"
	"strings"
)

// Dump lists every level from the innermost outwards.
func (t *SymbolTable) Dump(w io.Writer) {
	for level := t.CurrentLevel(); level >= 0; level-- {
		fmt.Fprintf(w, "LEVEL %d\n", level)
		t.levels[level].Dump(w)
	}
}

// Summary returns the one-line diagnostic form of sym without the newline.
func Summary(sym Symbol) string {
	var b strings.Builder
	sym.Dump(&b)
	return strings.TrimSuffix(b.String(), "\n")
}
