package builtins

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/manifest"
	"github.com/funvibe/glslsym/internal/symbols"
	"github.com/funvibe/glslsym/internal/typesystem"
)

func buildStage(t *testing.T, env config.Environment) (common, stage *symbols.SymbolTable) {
	t.Helper()
	common, err := BuildCommon(env, manifest.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	stage, err = BuildStage(common, env, manifest.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return common, stage
}

func function(t *testing.T, table *symbols.SymbolTable, key string) *symbols.Function {
	t.Helper()
	sym, ok := table.Find(key)
	if !ok {
		t.Fatalf("%s not declared", key)
	}
	f, ok := sym.(*symbols.Function)
	if !ok {
		t.Fatalf("%s is a %v", key, sym.Kind())
	}
	return f
}

func TestBuildCommon(t *testing.T) {
	table, err := BuildCommon(config.Environment{Version: 110, Stage: config.StageVertex}, manifest.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if table.Depth() != 1 || table.AdoptedLevels() != 1 || !table.Level(0).IsFrozen() {
		t.Fatalf("depth %d adopted %d", table.Depth(), table.AdoptedLevels())
	}

	if sin := function(t, table, "sin(vf3;"); sin.Op() != symbols.OpSin {
		t.Errorf("sin op = %v", sin.Op())
	}
	lod := function(t, table, "texture2DLod(s21;vf2;f1;")
	if exts := lod.Extensions(); len(exts) != 1 || exts[0] != "GL_ARB_shader_texture_lod" {
		t.Errorf("texture2DLod extensions = %v", exts)
	}
	if list, _ := table.FindFunctionNameList("lessThan"); len(list) != 6 {
		t.Errorf("lessThan has %d overloads", len(list))
	}
	if _, ok := table.Find("dFdx(f1;"); ok {
		t.Error("fragment built-in in common level")
	}

	sym, ok := table.Find("gl_MaxLights")
	if !ok {
		t.Fatal("gl_MaxLights missing")
	}
	v := sym.(*symbols.Variable)
	if v.Type().Qualifier.Storage != typesystem.Const || len(v.ConstArray()) != 1 || v.ConstArray()[0] != typesystem.IntConst(8) {
		t.Errorf("gl_MaxLights = %v %v", v.Type(), v.ConstArray())
	}

	for _, s := range table.Level(0).Symbols() {
		if s.IsWritable() {
			t.Errorf("%s is writable", s.MangledName())
		}
	}
}

func TestBuildCommonProfiles(t *testing.T) {
	table, err := BuildCommon(config.Environment{Version: 100, Profile: config.ProfileES}, manifest.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := table.Find("texture1D(s11;f1;"); ok {
		t.Error("texture1D in ES")
	}
	if _, ok := table.Find("gl_MaxLights"); ok {
		t.Error("gl_MaxLights in ES")
	}
	if _, ok := table.Find("gl_MaxVaryingVectors"); !ok {
		t.Error("gl_MaxVaryingVectors missing in ES")
	}
	lod := function(t, table, "texture2DLod(s21;vf2;f1;")
	if exts := lod.Extensions(); len(exts) != 1 || exts[0] != "GL_EXT_shader_texture_lod" {
		t.Errorf("ES texture2DLod extensions = %v", exts)
	}

	desktop, err := BuildCommon(config.Environment{Version: 130}, manifest.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := desktop.Find("abs(vi2;"); !ok {
		t.Error("integer abs missing at 130")
	}
	if exts := function(t, desktop, "texture2DLod(s21;vf2;f1;").Extensions(); len(exts) != 0 {
		t.Errorf("texture2DLod tagged at 130: %v", exts)
	}
}

func TestBuildStage(t *testing.T) {
	common, stage := buildStage(t, config.Environment{Version: 110, Stage: config.StageFragment})
	if stage.Depth() != 2 || stage.AdoptedLevels() != 2 {
		t.Fatalf("depth %d adopted %d", stage.Depth(), stage.AdoptedLevels())
	}
	if stage.Level(0) != common.Level(0) {
		t.Error("common level copied")
	}

	dFdx := function(t, stage, "dFdx(vf2;")
	if dFdx.Op() != symbols.OpDPdx || len(dFdx.Extensions()) != 0 {
		t.Errorf("dFdx op=%v exts=%v", dFdx.Op(), dFdx.Extensions())
	}
	_, scope, _ := stage.FindWithScope("dFdx(vf2;")
	if scope.Level != config.DynamicBuiltInLevel || !scope.BuiltIn {
		t.Errorf("dFdx scope = %+v", scope)
	}

	sym, _ := stage.Find("gl_FragColor")
	if sym == nil || sym.(*symbols.Variable).Type().Qualifier.Storage != typesystem.FragColor {
		t.Errorf("gl_FragColor = %v", sym)
	}

	// both texture2D overloads are visible through their own levels
	list, builtIn := stage.FindFunctionNameList("texture2D")
	if len(list) != 2 || !builtIn {
		t.Errorf("texture2D: %d overloads builtIn=%v", len(list), builtIn)
	}
}

func TestBuildStageExtensions(t *testing.T) {
	_, frag := buildStage(t, config.Environment{Version: 100, Profile: config.ProfileES, Stage: config.StageFragment})
	if exts := function(t, frag, "fwidth(vf4;").Extensions(); len(exts) != 1 || exts[0] != "GL_OES_standard_derivatives" {
		t.Errorf("fwidth extensions = %v", exts)
	}

	_, vert := buildStage(t, config.Environment{Version: 130, Stage: config.StageVertex})
	sym, ok := vert.Find("gl_InstanceID")
	if !ok {
		t.Fatal("gl_InstanceID missing")
	}
	if exts := sym.Extensions(); len(exts) != 1 || exts[0] != "GL_ARB_draw_instanced" {
		t.Errorf("gl_InstanceID extensions = %v", exts)
	}
}

func TestBuildStageBlock(t *testing.T) {
	_, stage := buildStage(t, config.Environment{Version: 130, Stage: config.StageVertex})
	level := stage.Level(config.DynamicBuiltInLevel)
	if len(level.Containers()) != 1 {
		t.Fatalf("%d block containers", len(level.Containers()))
	}
	sym, ok := stage.Find("gl_Position")
	if !ok {
		t.Fatal("gl_Position missing")
	}
	member, ok := sym.(*symbols.AnonMember)
	if !ok {
		t.Fatalf("gl_Position is a %v", sym.Kind())
	}
	if member.Container().Name() != config.AnonymousPrefix+"0" || member.Type().VectorSize != 4 {
		t.Errorf("member of %s typed %v", member.Container().Name(), member.Type())
	}
	if member.UniqueID() != member.Container().UniqueID() {
		t.Error("member id differs from its container")
	}
}

func TestBuildStageWithoutSection(t *testing.T) {
	_, stage := buildStage(t, config.Environment{Version: 430, Profile: config.ProfileCore, Stage: config.StageCompute})
	if stage.Depth() != 2 || stage.Level(1).Len() != 0 {
		t.Errorf("compute stage: depth %d, %d symbols", stage.Depth(), stage.Level(1).Len())
	}
}

func TestNewCompilation(t *testing.T) {
	_, stage := buildStage(t, config.Environment{Version: 110, Stage: config.StageVertex})
	table := NewCompilation(stage)
	if table.Depth() != 3 || table.AdoptedLevels() != 2 || !table.AtGlobalLevel() {
		t.Fatalf("depth %d adopted %d", table.Depth(), table.AdoptedLevels())
	}
	if err := table.Insert(symbols.NewVariable("color", typesystem.NewVector(typesystem.Float, 4), false)); err != nil {
		t.Fatal(err)
	}
	// overloading a built-in is allowed before ES 3.00
	sin := symbols.NewFunction("sin", typesystem.NewScalar(typesystem.Int), symbols.OpNull)
	sin.AddParameter(symbols.Parameter{Type: typesystem.NewScalar(typesystem.Int)})
	if err := table.Insert(sin); err != nil {
		t.Errorf("overloading sin: %v", err)
	}
	if _, ok := stage.Find("color"); ok {
		t.Error("compilation global leaked into the stage table")
	}
}

func TestNoBuiltInRedeclarationsFromES300(t *testing.T) {
	_, stage := buildStage(t, config.Environment{Version: 300, Profile: config.ProfileES, Stage: config.StageVertex})
	table := NewCompilation(stage)

	sin := symbols.NewFunction("sin", typesystem.NewScalar(typesystem.Int), symbols.OpNull)
	sin.AddParameter(symbols.Parameter{Type: typesystem.NewScalar(typesystem.Int)})
	var bre *symbols.BuiltInRedeclarationError
	if err := table.Insert(sin); !errors.As(err, &bre) {
		t.Errorf("overloading sin in ES 300: %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	data := `
common:
  functions:
    - decl: vec4 broken(vec9)
    - decl: float ok(float)
  variables:
    - decl: uniform float ok
operators:
  ok: nosuchop
`
	m, err := manifest.Parse([]byte(data), "bad.yaml")
	if err != nil {
		t.Fatal(err)
	}
	_, err = BuildCommon(config.Environment{Version: 110}, m, nil)
	if err == nil {
		t.Fatal("no error")
	}
	for _, want := range []string{"vec9", "installing uniform float ok", `unknown operator "nosuchop"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	if !errors.Is(err, symbols.ErrRedefinition) {
		t.Errorf("variable reusing a function name: %v", err)
	}
}

func TestBuildStageRequirements(t *testing.T) {
	common, err := BuildCommon(config.Environment{Version: 110}, manifest.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BuildStage(common, config.Environment{Version: 110}, manifest.Default(), nil); err == nil {
		t.Error("stage build without a stage")
	}
	if _, err := BuildStage(symbols.NewSymbolTable(), config.Environment{Version: 110, Stage: config.StageVertex}, manifest.Default(), nil); err == nil {
		t.Error("stage build over an empty table")
	}
	if _, err := BuildCommon(config.Environment{Version: 110, Profile: "desktop"}, manifest.Default(), nil); err == nil {
		t.Error("unknown profile accepted")
	}
}

func TestDefaultManifestRelatesEveryOperator(t *testing.T) {
	ops := manifest.Default().Operators
	for _, name := range symbols.BuiltInOperatorNames() {
		if ops[name] != name {
			t.Errorf("operator %s is not related to %s", name, name)
		}
	}
}
