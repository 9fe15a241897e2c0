package main

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/export"
	"github.com/funvibe/glslsym/internal/session"
	"github.com/funvibe/glslsym/internal/symbols"
)

func dumpCommand(w io.Writer, s *session.Session, env config.Environment) error {
	table, err := s.Environment(env)
	if err != nil {
		return err
	}
	table.Dump(w)
	return nil
}

// lookupCommand prints the symbol stored under name, or every overload of
// the function called name.
func lookupCommand(w io.Writer, s *session.Session, env config.Environment, name string) error {
	table, err := s.Environment(env)
	if err != nil {
		return err
	}
	if sym, scope, ok := table.FindWithScope(name); ok {
		printSymbol(w, sym, scope.Level)
		return nil
	}
	list, _ := table.FindFunctionNameList(name)
	if len(list) == 0 {
		_, err := table.Resolve(name)
		return err
	}
	for _, f := range list {
		_, scope, _ := table.FindWithScope(f.MangledName())
		printSymbol(w, f, scope.Level)
	}
	return nil
}

func printSymbol(w io.Writer, sym symbols.Symbol, level int) {
	fmt.Fprintf(w, "[%d] %s", level, symbols.Summary(sym))
	if exts := sym.Extensions(); len(exts) > 0 {
		fmt.Fprintf(w, " %v", exts)
	}
	if f, ok := sym.(*symbols.Function); ok && f.Op() != symbols.OpNull {
		fmt.Fprintf(w, " -> %s", f.Op())
	}
	fmt.Fprintln(w)
}

func exportCommand(w io.Writer, s *session.Session, env config.Environment, format export.Format, output string) error {
	table, err := s.Environment(env)
	if err != nil {
		return err
	}
	snapshot, err := export.Snapshot(table, export.Meta{Session: s.ID, Env: env})
	if err != nil {
		return fmt.Errorf("exporting %s: %w", env, err)
	}
	data, err := export.Encode(snapshot, format)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}
