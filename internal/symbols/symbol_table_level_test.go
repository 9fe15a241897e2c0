package symbols

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/glslsym/internal/typesystem"
)

func fn(name string, ret *typesystem.Type, params ...*typesystem.Type) *Function {
	f := NewFunction(name, ret, OpNull)
	for _, p := range params {
		f.AddParameter(Parameter{Type: p})
	}
	return f
}

func float() *typesystem.Type { return typesystem.NewScalar(typesystem.Float) }
func intT() *typesystem.Type  { return typesystem.NewScalar(typesystem.Int) }
func vec(n int) *typesystem.Type {
	return typesystem.NewVector(typesystem.Float, n)
}

func block(fields ...string) *Variable {
	var fs []typesystem.Field
	for _, name := range fields {
		fs = append(fs, typesystem.Field{Name: name, Type: vec(4)})
	}
	typ := typesystem.NewStruct("gl_PerVertex", fs).WithStorage(typesystem.Out)
	return NewVariable("", typ, false)
}

func TestFunctionMangledName(t *testing.T) {
	f := fn("mix", vec(3), vec(3), vec(3), float())
	if got := f.MangledName(); got != "mix(vf3;vf3;f1;" {
		t.Errorf("MangledName() = %q", got)
	}
	if f.Name() != "mix" || f.ParamCount() != 3 {
		t.Errorf("name %q params %d", f.Name(), f.ParamCount())
	}
}

func TestLevelInsertAndFind(t *testing.T) {
	l := NewLevel()
	v := NewVariable("color", vec(4), false)
	if err := l.Insert(v); err != nil {
		t.Fatal(err)
	}
	got, ok := l.Find("color")
	if !ok || got != v {
		t.Fatalf("Find(color) = %v, %v", got, ok)
	}
	if _, ok := l.Find("colour"); ok {
		t.Error("found undeclared name")
	}

	err := l.Insert(NewVariable("color", float(), false))
	if !errors.Is(err, ErrRedefinition) {
		t.Errorf("duplicate insert error = %v", err)
	}
}

func TestLevelFunctionRules(t *testing.T) {
	l := NewLevel()
	first := fn("foo", float(), intT())
	if err := l.Insert(first); err != nil {
		t.Fatal(err)
	}
	// a second prototype of the same overload is fine and keeps the first
	if err := l.Insert(fn("foo", float(), intT())); err != nil {
		t.Fatalf("redeclared prototype: %v", err)
	}
	if got, _ := l.Find("foo(i1;"); got != first {
		t.Error("redeclaration replaced the first overload")
	}

	if err := l.Insert(NewVariable("bar", float(), false)); err != nil {
		t.Fatal(err)
	}
	var redef *RedefinitionError
	if err := l.Insert(fn("bar", float())); !errors.As(err, &redef) || redef.Name != "bar" {
		t.Errorf("function over variable: %v", err)
	}
}

func TestFindOverloads(t *testing.T) {
	l := NewLevel()
	for _, f := range []*Function{
		fn("foo", float(), intT()),
		fn("foo", float(), float()),
		fn("bar", float(), intT()),
		fn("foobar", float(), intT()),
		fn("fo", float(), intT()),
	} {
		if err := l.Insert(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := l.Insert(NewVariable("foo2", float(), false)); err != nil {
		t.Fatal(err)
	}

	got := l.FindOverloads("foo")
	if len(got) != 2 {
		t.Fatalf("FindOverloads(foo) returned %d symbols", len(got))
	}
	for _, f := range got {
		if f.Name() != "foo" {
			t.Errorf("unexpected overload %s", f.MangledName())
		}
	}

	// a call key works as well as the base name
	if n := len(l.FindOverloads("foo(vf3;")); n != 2 {
		t.Errorf("FindOverloads by call key returned %d", n)
	}
	if n := len(l.FindOverloads("baz")); n != 0 {
		t.Errorf("FindOverloads(baz) returned %d", n)
	}
}

func TestFindFunctionVariableName(t *testing.T) {
	l := NewLevel()
	_ = l.Insert(fn("sin", float(), float()))
	_ = l.Insert(NewVariable("x", float(), false))

	if found, variable := l.FindFunctionVariableName("sin"); !found || variable {
		t.Errorf("sin: found=%v variable=%v", found, variable)
	}
	if found, variable := l.FindFunctionVariableName("x"); !found || !variable {
		t.Errorf("x: found=%v variable=%v", found, variable)
	}
	if found, _ := l.FindFunctionVariableName("si"); found {
		t.Error("prefix of a function name matched")
	}
	if !l.HasFunctionName("sin") || l.HasFunctionName("x") {
		t.Error("HasFunctionName mismatch")
	}
}

func TestSetFunctionExtensionsAndOperators(t *testing.T) {
	l := NewLevel()
	a := fn("texture2DRect", vec(4), typesystem.NewSampler(typesystem.Sampler{Dim: typesystem.DimRect}), vec(2))
	b := fn("texture2DRect", vec(4), typesystem.NewSampler(typesystem.Sampler{Dim: typesystem.DimRect}), vec(3))
	other := fn("texture2D", vec(4), typesystem.NewSampler(typesystem.Sampler{Dim: typesystem.Dim2D}), vec(2))
	for _, f := range []*Function{a, b, other} {
		if err := l.Insert(f); err != nil {
			t.Fatal(err)
		}
	}

	exts := []string{"GL_ARB_texture_rectangle"}
	if err := l.SetFunctionExtensions("texture2DRect", exts); err != nil {
		t.Fatal(err)
	}
	exts[0] = "mutated"
	for _, f := range []*Function{a, b} {
		if got := f.Extensions(); len(got) != 1 || got[0] != "GL_ARB_texture_rectangle" {
			t.Errorf("%s extensions = %v", f.MangledName(), got)
		}
	}
	if len(other.Extensions()) != 0 {
		t.Errorf("texture2D tagged: %v", other.Extensions())
	}

	if err := l.RelateToOperator("texture2D", OpDot); err != nil {
		t.Fatal(err)
	}
	if other.Op() != OpDot || a.Op() != OpNull {
		t.Errorf("ops: texture2D=%v texture2DRect=%v", other.Op(), a.Op())
	}
}

func TestFrozenLevelRefusesChanges(t *testing.T) {
	l := NewLevel()
	f := fn("sin", float(), float())
	v := NewVariable("gl_MaxLights", intT(), false)
	_ = l.Insert(f)
	_ = l.Insert(v)
	l.Freeze()

	if !l.IsFrozen() || f.IsWritable() || v.IsWritable() {
		t.Fatal("freeze did not reach the symbols")
	}
	if err := l.Insert(NewVariable("y", float(), false)); !errors.Is(err, ErrReadOnly) {
		t.Errorf("insert into frozen level: %v", err)
	}
	if err := l.SetFunctionExtensions("sin", []string{"GL_X"}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("tag frozen level: %v", err)
	}
	if err := l.RelateToOperator("sin", OpSin); !errors.Is(err, ErrReadOnly) {
		t.Errorf("relate frozen level: %v", err)
	}
	if _, ok := l.Find("y"); ok {
		t.Error("refused insert still stored the symbol")
	}

	defer func() {
		if recover() == nil {
			t.Error("WritableType on a frozen variable should panic")
		}
	}()
	v.WritableType()
}

func TestAnonymousBlockInsert(t *testing.T) {
	l := NewLevel()
	container := block("gl_Position", "gl_Color")
	if err := l.Insert(container); err != nil {
		t.Fatal(err)
	}
	if container.Name() != "anon@0" {
		t.Errorf("container name = %q", container.Name())
	}
	for i, name := range []string{"gl_Position", "gl_Color"} {
		sym, ok := l.Find(name)
		if !ok {
			t.Fatalf("member %s not found", name)
		}
		m, ok := sym.(*AnonMember)
		if !ok {
			t.Fatalf("%s is %T", name, sym)
		}
		if m.Container() != container || m.MemberNumber() != i || m.AnonID() != 0 {
			t.Errorf("member %s: container=%p number=%d anon=%d", name, m.Container(), m.MemberNumber(), m.AnonID())
		}
		if m.Type().MangledName() != "vf4" {
			t.Errorf("member type %s", m.Type().MangledName())
		}
	}

	second := block("gl_Position")
	if err := l.Insert(second); !errors.Is(err, ErrRedefinition) {
		t.Errorf("colliding block member: %v", err)
	}
	if second.Name() != "anon@1" {
		t.Errorf("second container name = %q", second.Name())
	}
}

func TestLevelCloneIsDeep(t *testing.T) {
	l := NewLevel()
	v := NewVariable("v", vec(3), false)
	v.SetUniqueID(7)
	v.SetExtensions([]string{"GL_EXT_a"})
	c := NewVariable("k", intT(), false)
	c.SetConstArray([]typesystem.ConstUnion{typesystem.IntConst(3)})
	f := fn("foo", float(), vec(2))
	f.SetDefined()
	f.RelateToOperator(OpLength)
	for _, s := range []Symbol{v, c, f} {
		if err := l.Insert(s); err != nil {
			t.Fatal(err)
		}
	}
	l.Freeze()

	clone := l.Clone()
	if clone.IsFrozen() {
		t.Error("clone of a frozen level is frozen")
	}
	if got, want := strings.Join(clone.Keys(), ","), strings.Join(l.Keys(), ","); got != want {
		t.Fatalf("keys %s, want %s", got, want)
	}

	for _, key := range l.Keys() {
		orig, _ := l.Find(key)
		cp, _ := clone.Find(key)
		if orig == cp {
			t.Errorf("%s: clone aliases the original", key)
		}
		if Summary(orig) != Summary(cp) || orig.UniqueID() != cp.UniqueID() {
			t.Errorf("%s: %q id %d vs %q id %d", key, Summary(orig), orig.UniqueID(), Summary(cp), cp.UniqueID())
		}
		if !cp.IsWritable() {
			t.Errorf("%s: clone is read-only", key)
		}
	}

	cv, _ := clone.Find("v")
	cv.(*Variable).WritableType().VectorSize = 2
	cv.SetExtensions(nil)
	if v.Type().VectorSize != 3 || len(v.Extensions()) != 1 {
		t.Error("mutating the clone changed the original")
	}

	cf, _ := clone.Find("foo(vf2;")
	if g := cf.(*Function); !g.Defined() || g.Op() != OpLength || g.Param(0).Type == f.Param(0).Type {
		t.Errorf("function clone: defined=%v op=%v shared param type=%v", g.Defined(), g.Op(), g.Param(0).Type == f.Param(0).Type)
	}
	ck, _ := clone.Find("k")
	if vals := ck.(*Variable).ConstArray(); len(vals) != 1 || vals[0].IConst != 3 {
		t.Errorf("constant clone = %v", vals)
	}
}

func TestLevelClonePreservesContainerSharing(t *testing.T) {
	l := NewLevel()
	container := block("a", "b", "c")
	container.SetUniqueID(42)
	if err := l.Insert(container); err != nil {
		t.Fatal(err)
	}
	_ = l.Insert(NewVariable("plain", float(), false))

	clone := l.Clone()
	if n := len(clone.Containers()); n != 1 {
		t.Fatalf("clone holds %d containers, want 1", n)
	}
	copied := clone.Containers()[0]
	if copied == container {
		t.Fatal("clone shares the original container")
	}
	for _, name := range []string{"a", "b", "c"} {
		sym, ok := clone.Find(name)
		if !ok {
			t.Fatalf("member %s missing from clone", name)
		}
		m := sym.(*AnonMember)
		if m.Container() != copied {
			t.Errorf("member %s points at %p, want the single copy %p", name, m.Container(), copied)
		}
		if m.AnonID() != 0 || m.UniqueID() != 42 {
			t.Errorf("member %s anon=%d id=%d", name, m.AnonID(), m.UniqueID())
		}
	}
	if clone.Len() != l.Len() {
		t.Errorf("clone has %d entries, want %d", clone.Len(), l.Len())
	}
}

func TestAnonymousMemberMayNotShadowFunction(t *testing.T) {
	l := NewLevel()
	if err := l.Insert(fn("foo", float(), intT())); err != nil {
		t.Fatal(err)
	}
	if err := l.Insert(block("foo", "bar")); !errors.Is(err, ErrRedefinition) {
		t.Errorf("member named like a function: %v", err)
	}
	if sym, ok := l.Find("foo"); ok {
		t.Errorf("member foo exposed as %T", sym)
	}
	if _, ok := l.Find("bar"); !ok {
		t.Error("member bar not exposed")
	}

	clone := l.Clone()
	if got, want := strings.Join(clone.Keys(), " "), "bar foo(i1;"; got != want {
		t.Errorf("clone keys = %q, want %q", got, want)
	}
}

func TestLevelCloneMixedEntries(t *testing.T) {
	l := NewLevel()
	for _, sym := range []Symbol{
		fn("a", float(), float()),
		fn("a", float(), vec(2)),
		NewVariable("ab", vec(3), false),
		block("b", "m"),
		fn("c", vec(4), intT()),
		NewVariable("n", float(), false),
		block("z"),
	} {
		if err := l.Insert(sym); err != nil {
			t.Fatal(err)
		}
	}

	clone := l.Clone()
	if got, want := strings.Join(clone.Keys(), " "), strings.Join(l.Keys(), " "); got != want {
		t.Fatalf("clone keys = %q, want %q", got, want)
	}
	src, dst := l.Symbols(), clone.Symbols()
	for i := range src {
		if Summary(dst[i]) != Summary(src[i]) {
			t.Errorf("entry %d: %q, want %q", i, Summary(dst[i]), Summary(src[i]))
		}
		if dst[i] == src[i] {
			t.Errorf("entry %d shared with the source", i)
		}
	}
	if n := len(clone.Containers()); n != 2 {
		t.Fatalf("clone holds %d containers, want 2", n)
	}
	for _, name := range []string{"b", "m"} {
		sym, _ := clone.Find(name)
		if sym.(*AnonMember).Container() != clone.Containers()[0] {
			t.Errorf("member %s not attached to the cloned container", name)
		}
	}
	z, _ := clone.Find("z")
	if z.(*AnonMember).Container() != clone.Containers()[1] {
		t.Error("member z not attached to the second cloned container")
	}
}

func TestAnonMemberClonePanics(t *testing.T) {
	l := NewLevel()
	_ = l.Insert(block("a"))
	sym, _ := l.Find("a")
	defer func() {
		if recover() == nil {
			t.Error("cloning a member directly should panic")
		}
	}()
	sym.Clone()
}

func TestDefaultPrecisionsSavedOnce(t *testing.T) {
	l := NewLevel()
	l.SetPreviousDefaultPrecisions([]typesystem.PrecisionQualifier{typesystem.PrecisionHigh})
	l.SetPreviousDefaultPrecisions([]typesystem.PrecisionQualifier{typesystem.PrecisionLow})

	got := []typesystem.PrecisionQualifier{typesystem.PrecisionNone}
	l.Clone().PreviousDefaultPrecisions(got)
	if got[0] != typesystem.PrecisionHigh {
		t.Errorf("restored %v", got[0])
	}
}

func TestSymbolDump(t *testing.T) {
	l := NewLevel()
	_ = l.Insert(NewVariable("gl_FragColor", vec(4).WithStorage(typesystem.FragColor), false))
	_ = l.Insert(NewVariable("lights", vec(3).WithArraySize(4).WithStorage(typesystem.Uniform), false))
	_ = l.Insert(fn("texture2D", vec(4), typesystem.NewSampler(typesystem.Sampler{Dim: typesystem.Dim2D}), vec(2)))
	_ = l.Insert(block("gl_Position"))

	var b strings.Builder
	l.Dump(&b)
	want := "gl_FragColor: fragment out float\n" +
		"anonymous member 0 of anon@0\n" +
		"lights: uniform float[0]\n" +
		"texture2D: float texture2D(s21;vf2;\n"
	if got := b.String(); got != want {
		t.Errorf("Dump =\n%s\nwant\n%s", got, want)
	}
}
