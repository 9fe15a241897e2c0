package pipeline

import (
	"errors"

	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/logging"
	"github.com/funvibe/glslsym/internal/manifest"
	"github.com/funvibe/glslsym/internal/symbols"
)

// PipelineContext carries one built-in level through the build stages.
type PipelineContext struct {
	Env      config.Environment
	Manifest *manifest.Manifest

	// Section holds the declarations installed into the innermost level of Table.
	Section manifest.Section

	Table  *symbols.SymbolTable
	Logger *logging.Logger
	Errors []error
}

// NewPipelineContext returns a context building into table. A nil logger is
// replaced by a silent one.
func NewPipelineContext(env config.Environment, m *manifest.Manifest, section manifest.Section, table *symbols.SymbolTable, logger *logging.Logger) *PipelineContext {
	if logger == nil {
		logger = logging.Discard()
	}
	return &PipelineContext{
		Env:      env,
		Manifest: m,
		Section:  section,
		Table:    table,
		Logger:   logger,
	}
}

// AddError records err and logs it.
func (ctx *PipelineContext) AddError(err error) {
	ctx.Errors = append(ctx.Errors, err)
	ctx.Logger.Errorf("%s: %v", ctx.Env, err)
}

// Err joins every recorded error, nil when there are none.
func (ctx *PipelineContext) Err() error {
	return errors.Join(ctx.Errors...)
}
