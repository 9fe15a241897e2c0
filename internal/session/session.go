// Package session caches built-in environments and hands out per-compilation
// symbol tables that share them.
//
// A built-in environment is built once per Session and then only read: every
// compilation table adopts its frozen levels by reference and owns only its
// own globals, so compilations may run in parallel.
package session

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/funvibe/glslsym/internal/builtins"
	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/logging"
	"github.com/funvibe/glslsym/internal/manifest"
	"github.com/funvibe/glslsym/internal/symbols"
)

// Session owns the built-in environments of one manifest.
type Session struct {
	ID string

	manifest *manifest.Manifest
	logger   *logging.Logger
	limit    int

	mu        sync.Mutex
	common    map[config.Environment]*entry
	stages    map[config.Environment]*entry
	templates map[config.Environment]*entry
}

// entry is built at most once; concurrent callers wait for the first one.
type entry struct {
	once  sync.Once
	table *symbols.SymbolTable
	err   error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used while building environments.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithParallelism bounds the number of concurrent compilations of RunParallel.
func WithParallelism(n int) Option {
	return func(s *Session) { s.limit = n }
}

// New returns a session over m; a nil m selects the default manifest.
func New(m *manifest.Manifest, opts ...Option) *Session {
	if m == nil {
		m = manifest.Default()
	}
	s := &Session{
		ID:        uuid.NewString(),
		manifest:  m,
		logger:    logging.Discard(),
		limit:     runtime.GOMAXPROCS(0),
		common:    make(map[config.Environment]*entry),
		stages:    make(map[config.Environment]*entry),
		templates: make(map[config.Environment]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithTag(s.ID[:8])
	return s
}

// Manifest returns the manifest the session builds from.
func (s *Session) Manifest() *manifest.Manifest { return s.manifest }

func (s *Session) lookup(cache map[config.Environment]*entry, env config.Environment) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := cache[env]
	if !ok {
		e = &entry{}
		cache[env] = e
	}
	return e
}

// Environment returns the frozen built-in table of env. Without a stage it
// is the shared level alone; with one, the shared level plus the stage
// level. Tables are built once and shared by every caller; failures are
// cached too.
func (s *Session) Environment(env config.Environment) (*symbols.SymbolTable, error) {
	common := s.lookup(s.common, env.Common())
	common.once.Do(func() {
		s.logger.Infof("building common built-ins for %s", env.Common())
		common.table, common.err = builtins.BuildCommon(env, s.manifest, s.logger)
	})
	if common.err != nil || env.Stage == "" {
		return common.table, common.err
	}

	stage := s.lookup(s.stages, env)
	stage.once.Do(func() {
		s.logger.Infof("building %s built-ins for %s", env.Stage, env)
		stage.table, stage.err = builtins.BuildStage(common.table, env, s.manifest, s.logger)
	})
	return stage.table, stage.err
}

// NewCompilation returns a symbol table for one compilation unit of env:
// the built-in levels adopted and a private level for globals. Tables
// returned by separate calls share nothing writable.
func (s *Session) NewCompilation(env config.Environment) (*symbols.SymbolTable, error) {
	if env.Stage == "" {
		return nil, fmt.Errorf("compilation for %s: no stage", env)
	}
	template := s.lookup(s.templates, env)
	template.once.Do(func() {
		stage, err := s.Environment(env)
		if err != nil {
			template.err = err
			return
		}
		template.table = builtins.NewCompilation(stage)
	})
	if template.err != nil {
		return nil, template.err
	}
	return template.table.Clone(), nil
}

// CompileFunc runs one compilation against its own table.
type CompileFunc func(ctx context.Context, unit int, table *symbols.SymbolTable) error

// RunParallel runs n compilations of env concurrently, each on its own
// table. The first error cancels the context passed to the others and is
// returned.
func (s *Session) RunParallel(ctx context.Context, env config.Environment, n int, fn CompileFunc) error {
	if _, err := s.Environment(env); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}
	for unit := 0; unit < n; unit++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table, err := s.NewCompilation(env)
			if err != nil {
				return err
			}
			if err := fn(gctx, unit, table); err != nil {
				return fmt.Errorf("compilation %d: %w", unit, err)
			}
			return nil
		})
	}
	return g.Wait()
}
