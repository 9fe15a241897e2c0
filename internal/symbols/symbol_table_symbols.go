package symbols

import (
	"fmt"
	"io"

	"github.com/funvibe/glslsym/internal/typesystem"
)

// Variable is a declared variable or constant. It exclusively owns its Type.
type Variable struct {
	symbolBase
	typ        *typesystem.Type
	userType   bool
	constArray []typesystem.ConstUnion
}

// NewVariable returns a writable variable. userType marks a struct name
// declared by the user (a type, not an object).
func NewVariable(name string, typ *typesystem.Type, userType bool) *Variable {
	return &Variable{symbolBase: symbolBase{name: name}, typ: typ, userType: userType}
}

func (v *Variable) Kind() SymbolKind        { return VariableSymbol }
func (v *Variable) MangledName() string     { return v.name }
func (v *Variable) Type() *typesystem.Type  { return v.typ }
func (v *Variable) IsUserType() bool        { return v.userType }

// ConstArray returns the compile-time value, nil when there is none.
func (v *Variable) ConstArray() []typesystem.ConstUnion { return v.constArray }

// WritableType returns the type for in-place modification.
func (v *Variable) WritableType() *typesystem.Type {
	if v.readOnly {
		panic("WritableType: variable " + v.name + " is read-only")
	}
	return v.typ
}

// SetConstArray records the compile-time value of a non-struct constant.
func (v *Variable) SetConstArray(values []typesystem.ConstUnion) {
	if v.readOnly {
		panic("SetConstArray: variable " + v.name + " is read-only")
	}
	if len(values) > 0 && v.typ.IsStruct() {
		panic("SetConstArray: struct constant " + v.name)
	}
	v.constArray = values
}

// MakeReadOnly freezes the variable. Type caches are filled first so that
// concurrent readers of a shared level never write to it.
func (v *Variable) MakeReadOnly() {
	warmType(v.typ)
	v.readOnly = true
}

func (v *Variable) Clone() Symbol {
	c := &Variable{
		symbolBase: v.cloneBase(),
		typ:        v.typ.DeepCopy(),
		userType:   v.userType,
	}
	if len(v.constArray) > 0 {
		if v.typ.IsStruct() {
			panic("Clone: struct constant " + v.name)
		}
		c.constArray = append([]typesystem.ConstUnion(nil), v.constArray...)
	}
	return c
}

func (v *Variable) Dump(w io.Writer) {
	fmt.Fprintf(w, "%s: %s %s", v.name, v.typ.StorageQualifierString(), v.typ.BasicTypeString())
	if v.typ.IsArray() {
		io.WriteString(w, "[0]")
	}
	io.WriteString(w, "\n")
}

// Parameter is one formal parameter of a Function; the function owns Type.
type Parameter struct {
	Name  string
	Type  *typesystem.Type
	Const bool
}

func (p Parameter) copy() Parameter {
	return Parameter{Name: p.Name, Type: p.Type.DeepCopy(), Const: p.Const}
}

// Function is one overload. Its key is name + "(" + one "<mangled type>;"
// per parameter, so every overload of a name sorts into one contiguous run.
type Function struct {
	symbolBase
	returnType *typesystem.Type
	params     []Parameter
	mangled    string
	op         Operator
	defined    bool
}

// NewFunction returns a prototype with no parameters yet.
func NewFunction(name string, returnType *typesystem.Type, op Operator) *Function {
	return &Function{
		symbolBase: symbolBase{name: name},
		returnType: returnType,
		mangled:    name + "(",
		op:         op,
	}
}

func (f *Function) Kind() SymbolKind              { return FunctionSymbol }
func (f *Function) MangledName() string           { return f.mangled }
func (f *Function) ReturnType() *typesystem.Type  { return f.returnType }
func (f *Function) ParamCount() int               { return len(f.params) }
func (f *Function) Param(i int) Parameter         { return f.params[i] }
func (f *Function) Op() Operator                  { return f.op }
func (f *Function) Defined() bool                 { return f.defined }

// AddParameter appends p and extends the overload key with its type.
func (f *Function) AddParameter(p Parameter) {
	f.mustBeWritable("AddParameter")
	f.params = append(f.params, p)
	f.mangled = string(p.Type.AppendMangledName([]byte(f.mangled)))
}

// RelateToOperator ties the function to a built-in operation.
func (f *Function) RelateToOperator(op Operator) {
	f.mustBeWritable("RelateToOperator")
	f.op = op
}

// SetDefined marks that a body has been seen for the prototype.
func (f *Function) SetDefined() {
	f.mustBeWritable("SetDefined")
	f.defined = true
}

func (f *Function) mustBeWritable(op string) {
	if f.readOnly {
		panic(op + ": function " + f.mangled + " is read-only")
	}
}

func (f *Function) MakeReadOnly() {
	warmType(f.returnType)
	for _, p := range f.params {
		warmType(p.Type)
	}
	f.readOnly = true
}

func (f *Function) Clone() Symbol {
	c := &Function{
		symbolBase: f.cloneBase(),
		returnType: f.returnType.DeepCopy(),
		mangled:    f.mangled,
		op:         f.op,
		defined:    f.defined,
	}
	if f.params != nil {
		c.params = make([]Parameter, len(f.params))
		for i, p := range f.params {
			c.params[i] = p.copy()
		}
	}
	return c
}

func (f *Function) Dump(w io.Writer) {
	fmt.Fprintf(w, "%s: %s %s\n", f.name, f.returnType.BasicTypeString(), f.mangled)
}

// AnonMember exposes one field of an anonymous block in the enclosing scope.
// It does not own its container: the Level that holds the member also holds
// the container, and members of one block all point at that one Variable.
type AnonMember struct {
	symbolBase
	container *Variable
	member    int
	anonID    int
}

func newAnonMember(name string, member int, container *Variable, anonID int) *AnonMember {
	return &AnonMember{
		symbolBase: symbolBase{name: name, uniqueID: container.uniqueID},
		container:  container,
		member:     member,
		anonID:     anonID,
	}
}

func (a *AnonMember) Kind() SymbolKind      { return AnonMemberSymbol }
func (a *AnonMember) MangledName() string   { return a.name }
func (a *AnonMember) Container() *Variable  { return a.container }
func (a *AnonMember) MemberNumber() int     { return a.member }
func (a *AnonMember) AnonID() int           { return a.anonID }

// Type returns the container's field type.
func (a *AnonMember) Type() *typesystem.Type {
	return a.container.typ.Fields[a.member].Type
}

func (a *AnonMember) MakeReadOnly() { a.readOnly = true }

// Clone always panics: members must be reproduced by cloning their
// container, so that all of them end up sharing the one copy.
func (a *AnonMember) Clone() Symbol {
	panic("Clone: anonymous member " + a.name + " must be cloned through its container")
}

func (a *AnonMember) Dump(w io.Writer) {
	fmt.Fprintf(w, "anonymous member %d of %s\n", a.member, a.container.name)
}

func warmType(t *typesystem.Type) {
	if t == nil {
		return
	}
	t.MangledName()
	if t.IsStruct() {
		t.StructSize()
		for _, f := range t.Fields {
			warmType(f.Type)
		}
	}
}
