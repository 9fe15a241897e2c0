// Package builtins builds the frozen built-in levels of a GLSL environment
// from a manifest:
//
//	level 0  functions, variables and blocks common to every stage
//	level 1  the built-ins of one stage
//
// Both levels are built through the same pipeline: install the admitted
// declarations, tag them with extensions, relate them to operators, freeze.
package builtins

import (
	"fmt"

	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/logging"
	"github.com/funvibe/glslsym/internal/manifest"
	"github.com/funvibe/glslsym/internal/pipeline"
	"github.com/funvibe/glslsym/internal/symbols"
)

func levelPipeline(freeze *FreezeProcessor) *pipeline.Pipeline {
	return pipeline.New(
		&InstallProcessor{},
		&ExtensionProcessor{},
		&OperatorProcessor{},
		freeze,
	)
}

// BuildCommon returns a table holding the shared built-in level of env's
// version and profile, frozen and adopted. env.Stage is ignored.
func BuildCommon(env config.Environment, m *manifest.Manifest, logger *logging.Logger) (*symbols.SymbolTable, error) {
	env = env.Common()
	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("building common built-ins: %w", err)
	}

	table := symbols.NewSymbolTable()
	table.PushLevel()
	ctx := pipeline.NewPipelineContext(env, m, m.Common, table, logger)
	ctx = levelPipeline(&FreezeProcessor{}).Run(ctx)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building common built-ins for %s: %w", env, err)
	}
	return table, nil
}

// BuildStage returns a table adopting the level of common and adding the
// frozen built-in level of env.Stage on top. A stage the manifest does not
// describe gets an empty level so that user globals always start at
// config.GlobalLevel.
func BuildStage(common *symbols.SymbolTable, env config.Environment, m *manifest.Manifest, logger *logging.Logger) (*symbols.SymbolTable, error) {
	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("building stage built-ins: %w", err)
	}
	if env.Stage == "" {
		return nil, fmt.Errorf("building stage built-ins for %s: no stage", env)
	}
	if common.Depth() != config.DynamicBuiltInLevel || common.AdoptedLevels() != common.Depth() {
		return nil, fmt.Errorf("building stage built-ins for %s: common table has %d levels, %d adopted",
			env, common.Depth(), common.AdoptedLevels())
	}

	table := symbols.NewSymbolTable()
	table.AdoptLevels(common)
	table.PushLevel()
	section, _ := m.Stage(env.Stage)
	ctx := pipeline.NewPipelineContext(env, m, section, table, logger)
	freeze := &FreezeProcessor{
		NoBuiltInRedeclarations: env.Profile == config.ProfileES && env.Version >= config.NoBuiltInRedeclarationsVersion,
	}
	ctx = levelPipeline(freeze).Run(ctx)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building %s built-ins for %s: %w", env.Stage, env, err)
	}
	return table, nil
}

// NewCompilation returns a table for one compilation unit: the built-in
// levels of stage adopted by reference and one writable level for globals.
func NewCompilation(stage *symbols.SymbolTable) *symbols.SymbolTable {
	table := symbols.NewSymbolTable()
	table.AdoptLevels(stage)
	table.PushLevel()
	return table
}
