package builtins

import (
	"fmt"
	"sort"

	"github.com/funvibe/glslsym/internal/pipeline"
	"github.com/funvibe/glslsym/internal/symbols"
)

// InstallProcessor inserts the declarations of ctx.Section admitted by the
// environment into the innermost level of ctx.Table.
type InstallProcessor struct{}

func (ip *InstallProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	installed := 0
	for _, f := range ctx.Section.Functions {
		if !f.Allows(ctx.Env) {
			continue
		}
		decls, err := Expand(f.Decl)
		if err != nil {
			ctx.AddError(err)
			continue
		}
		for _, decl := range decls {
			fn, err := ParseFunction(decl)
			if err != nil {
				ctx.AddError(err)
				continue
			}
			if err := ctx.Table.Insert(fn); err != nil {
				ctx.AddError(fmt.Errorf("installing %s: %w", decl, err))
				continue
			}
			installed++
		}
	}

	for _, v := range ctx.Section.Variables {
		if !v.Allows(ctx.Env) {
			continue
		}
		variable, err := ParseVariable(v, ctx.Env.Stage)
		if err != nil {
			ctx.AddError(err)
			continue
		}
		if err := ctx.Table.Insert(variable); err != nil {
			ctx.AddError(fmt.Errorf("installing %s: %w", v.Decl, err))
			continue
		}
		installed++
	}

	for _, b := range ctx.Section.Blocks {
		if !b.Allows(ctx.Env) {
			continue
		}
		block, err := ParseBlock(b)
		if err != nil {
			ctx.AddError(err)
			continue
		}
		if err := ctx.Table.Insert(block); err != nil {
			ctx.AddError(fmt.Errorf("installing block %s: %w", b.TypeName, err))
			continue
		}
		installed++
	}

	ctx.Logger.Infof("%s: installed %d declarations at level %d", ctx.Env, installed, ctx.Table.CurrentLevel())
	return ctx
}

// ExtensionProcessor tags the built-ins of the innermost level with the
// extensions that enable them in this environment.
type ExtensionProcessor struct{}

func (ep *ExtensionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Manifest == nil {
		return ctx
	}

	// a built-in may be enabled by several extensions
	functions := map[string][]string{}
	variables := map[string][]string{}
	for _, ext := range ctx.Manifest.Extensions {
		if !ext.Allows(ctx.Env) {
			continue
		}
		for _, name := range ext.Functions {
			functions[name] = append(functions[name], ext.Name)
		}
		for _, name := range ext.Variables {
			variables[name] = append(variables[name], ext.Name)
		}
	}

	for _, name := range sortedKeys(functions) {
		if err := ctx.Table.SetFunctionExtensions(name, functions[name]); err != nil {
			ctx.AddError(err)
		}
	}

	top := ctx.Table.Level(ctx.Table.CurrentLevel())
	for _, name := range sortedKeys(variables) {
		// variables of outer levels were tagged when those were built
		if _, ok := top.Find(name); !ok {
			continue
		}
		if err := ctx.Table.SetVariableExtensions(name, variables[name]); err != nil {
			ctx.AddError(err)
		}
	}
	return ctx
}

// OperatorProcessor relates built-in functions of the writable levels to the
// operators they lower to.
type OperatorProcessor struct{}

func (op *OperatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Manifest == nil {
		return ctx
	}
	for _, name := range sortedKeys(ctx.Manifest.Operators) {
		opName := ctx.Manifest.Operators[name]
		operator, ok := symbols.OperatorByName(opName)
		if !ok {
			ctx.AddError(fmt.Errorf("operators: %s: unknown operator %q", name, opName))
			continue
		}
		if err := ctx.Table.RelateToOperator(name, operator); err != nil {
			ctx.AddError(err)
		}
	}
	return ctx
}

// FreezeProcessor makes every level of the table read-only and shared.
type FreezeProcessor struct {
	// NoBuiltInRedeclarations forbids user globals from reusing built-in
	// function names in tables adopting this one.
	NoBuiltInRedeclarations bool
}

func (fp *FreezeProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if fp.NoBuiltInRedeclarations {
		ctx.Table.SetNoBuiltInRedeclarations()
	}
	ctx.Table.Adopt()
	return ctx
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
