// Package manifest describes the built-in environment of a GLSL front end:
// the functions, variables and interface blocks every shader sees, which
// extensions gate them, and which built-in functions lower to operators.
//
// Declarations are written in GLSL syntax and may use the generic type names
// genType, genIType, genUType, genBType, genDType, vec, ivec, uvec, bvec and
// mat; the builtins package expands them.
package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/glslsym/internal/config"
)

// ProfileNone is how the absence of a profile is spelled in a manifest.
const ProfileNone = "none"

// Manifest is the top-level built-in manifest.
type Manifest struct {
	// Common declarations are shared by every stage of a version/profile.
	Common Section `yaml:"common"`

	// Stages holds the per-stage declarations, keyed by stage name.
	Stages map[string]Section `yaml:"stages,omitempty"`

	// Extensions tags already declared built-ins with the extensions that
	// must be enabled to use them.
	Extensions []Extension `yaml:"extensions,omitempty"`

	// Operators maps a built-in function name to the operator it lowers to.
	Operators map[string]string `yaml:"operators,omitempty"`
}

// Section is one group of declarations.
type Section struct {
	Functions []Function `yaml:"functions,omitempty"`
	Variables []Variable `yaml:"variables,omitempty"`
	Blocks    []Block    `yaml:"blocks,omitempty"`
}

// Gate restricts a declaration to some versions and profiles. Zero values
// place no restriction.
type Gate struct {
	MinVersion int      `yaml:"min_version,omitempty"`
	MaxVersion int      `yaml:"max_version,omitempty"`
	Profiles   []string `yaml:"profiles,omitempty"`
}

// Function is a built-in function prototype, e.g. "vec4 texture2D(sampler2D, vec2)".
type Function struct {
	Decl string `yaml:"decl"`
	Gate `yaml:",inline"`
}

// Variable is a built-in variable, e.g. "uniform mat4 gl_ModelViewMatrix".
type Variable struct {
	Decl string `yaml:"decl"`

	// Storage overrides the qualifier with a built-in one such as
	// "position" or "frag_color".
	Storage string `yaml:"storage,omitempty"`

	// Value is the constant value, comma separated for vectors and arrays.
	Value string `yaml:"value,omitempty"`

	Gate `yaml:",inline"`
}

// Block is a built-in interface block.
type Block struct {
	// Storage is "in", "out" or "uniform".
	Storage string `yaml:"storage"`

	// TypeName is the block name, e.g. "gl_PerVertex".
	TypeName string `yaml:"type_name"`

	// Instance is the instance name; empty makes the block anonymous so that
	// its members are visible directly.
	Instance string `yaml:"instance,omitempty"`

	// Fields are member declarations, e.g. "vec4 gl_Position".
	Fields []string `yaml:"fields"`

	Gate `yaml:",inline"`
}

// Extension lists built-ins that require an extension.
type Extension struct {
	Name      string   `yaml:"name"`
	Functions []string `yaml:"functions,omitempty"`
	Variables []string `yaml:"variables,omitempty"`
	Gate      `yaml:",inline"`
}

// Allows reports whether the gate admits env.
func (g Gate) Allows(env config.Environment) bool {
	if g.MinVersion > 0 && env.Version < g.MinVersion {
		return false
	}
	if g.MaxVersion > 0 && env.Version > g.MaxVersion {
		return false
	}
	if len(g.Profiles) == 0 {
		return true
	}
	profile := env.Profile
	if profile == config.ProfileNone {
		profile = ProfileNone
	}
	for _, p := range g.Profiles {
		if p == profile {
			return true
		}
	}
	return false
}

// Stage returns the section of stage; ok is false if the manifest has none.
func (m *Manifest) Stage(stage string) (Section, bool) {
	s, ok := m.Stages[stage]
	return s, ok
}

//go:embed default.yaml
var defaultData []byte

var (
	defaultOnce     sync.Once
	defaultManifest *Manifest
)

// Default returns the embedded manifest. It is parsed once and shared, so
// callers must not modify it.
func Default() *Manifest {
	defaultOnce.Do(func() {
		m, err := Parse(defaultData, "default.yaml")
		if err != nil {
			panic(fmt.Sprintf("Default: embedded manifest: %v", err))
		}
		defaultManifest = m
	})
	return defaultManifest
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses manifest content from bytes.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := m.validate(path); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate(path string) error {
	if err := m.Common.validate(path, "common"); err != nil {
		return err
	}
	for stage, s := range m.Stages {
		if !isStage(stage) {
			return fmt.Errorf("%s: stages: unknown stage %q", path, stage)
		}
		if err := s.validate(path, "stages."+stage); err != nil {
			return err
		}
	}
	for i, ext := range m.Extensions {
		where := fmt.Sprintf("extensions[%d]", i)
		if ext.Name == "" {
			return fmt.Errorf("%s: %s: name is required", path, where)
		}
		if len(ext.Functions) == 0 && len(ext.Variables) == 0 {
			return fmt.Errorf("%s: %s (%s): nothing to tag", path, where, ext.Name)
		}
		if err := ext.Gate.validate(path, where); err != nil {
			return err
		}
	}
	for name, op := range m.Operators {
		if name == "" || op == "" {
			return fmt.Errorf("%s: operators: empty entry %q: %q", path, name, op)
		}
	}
	return nil
}

func (s Section) validate(path, where string) error {
	for i, f := range s.Functions {
		w := fmt.Sprintf("%s.functions[%d]", where, i)
		if f.Decl == "" {
			return fmt.Errorf("%s: %s: decl is required", path, w)
		}
		if err := f.Gate.validate(path, w); err != nil {
			return err
		}
	}
	for i, v := range s.Variables {
		w := fmt.Sprintf("%s.variables[%d]", where, i)
		if v.Decl == "" {
			return fmt.Errorf("%s: %s: decl is required", path, w)
		}
		if err := v.Gate.validate(path, w); err != nil {
			return err
		}
	}
	for i, b := range s.Blocks {
		w := fmt.Sprintf("%s.blocks[%d]", where, i)
		switch b.Storage {
		case "in", "out", "uniform":
		default:
			return fmt.Errorf("%s: %s: storage must be in, out or uniform, got %q", path, w, b.Storage)
		}
		if b.TypeName == "" {
			return fmt.Errorf("%s: %s: type_name is required", path, w)
		}
		if len(b.Fields) == 0 {
			return fmt.Errorf("%s: %s (%s): no fields", path, w, b.TypeName)
		}
		if err := b.Gate.validate(path, w); err != nil {
			return err
		}
	}
	return nil
}

func (g Gate) validate(path, where string) error {
	if g.MinVersion < 0 || g.MaxVersion < 0 {
		return fmt.Errorf("%s: %s: negative version bound", path, where)
	}
	if g.MaxVersion > 0 && g.MinVersion > g.MaxVersion {
		return fmt.Errorf("%s: %s: min_version %d exceeds max_version %d", path, where, g.MinVersion, g.MaxVersion)
	}
	for _, p := range g.Profiles {
		if p != ProfileNone && !isProfile(p) {
			return fmt.Errorf("%s: %s: unknown profile %q", path, where, p)
		}
	}
	return nil
}

func isStage(s string) bool {
	for _, v := range config.Stages {
		if v == s {
			return true
		}
	}
	return false
}

func isProfile(p string) bool {
	for _, v := range config.Profiles {
		if v == p {
			return true
		}
	}
	return false
}
