package typesystem

import (
	"strconv"
	"strings"
)

// Field is one member of a struct or block, in declaration order.
type Field struct {
	Name string
	Type *Type
}

// Type is a GLSL type: basic kind, shape, optional array sizes, sampler
// configuration and struct members.
//
// Scalars and structs have VectorSize 1; matrices have VectorSize 0 and
// non-zero MatrixCols/MatrixRows. Once MangledName or StructSize has been
// requested the type must be treated as immutable: both are cached.
type Type struct {
	Basic      BasicType
	Qualifier  Qualifier
	VectorSize int
	MatrixCols int
	MatrixRows int
	ArraySizes []int
	Sampler    Sampler
	Fields     []Field
	TypeName   string // declared struct or block name
	FieldName  string // name when this type is a member of a struct

	mangled    string
	structSize int // 0 until computed; empty structs are not allowed
}

// NewScalar returns a scalar of the given kind.
func NewScalar(basic BasicType) *Type {
	return &Type{Basic: basic, VectorSize: 1}
}

// NewVector returns a vector of size components.
func NewVector(basic BasicType, size int) *Type {
	return &Type{Basic: basic, VectorSize: size}
}

// NewMatrix returns a cols×rows matrix.
func NewMatrix(basic BasicType, cols, rows int) *Type {
	return &Type{Basic: basic, MatrixCols: cols, MatrixRows: rows}
}

// NewSampler returns a sampler or image type.
func NewSampler(s Sampler) *Type {
	if s.Type == Void {
		s.Type = Float
	}
	return &Type{Basic: SamplerKind, VectorSize: 1, Sampler: s}
}

// NewStruct returns a struct type named name with the given members.
func NewStruct(name string, fields []Field) *Type {
	for i := range fields {
		if fields[i].Type != nil && fields[i].Type.FieldName == "" {
			fields[i].Type.FieldName = fields[i].Name
		}
	}
	return &Type{Basic: Struct, VectorSize: 1, TypeName: name, Fields: fields}
}

// WithArraySize returns t itself after recording an outermost array size.
func (t *Type) WithArraySize(size int) *Type {
	t.ArraySizes = append(t.ArraySizes, size)
	return t
}

// WithStorage sets the storage qualifier and returns t.
func (t *Type) WithStorage(q StorageQualifier) *Type {
	t.Qualifier.Storage = q
	return t
}

func (t *Type) IsMatrix() bool { return t.MatrixCols > 0 }
func (t *Type) IsVector() bool { return t.VectorSize > 1 }
func (t *Type) IsScalar() bool { return t.VectorSize == 1 && !t.IsStruct() && !t.IsArray() }
func (t *Type) IsArray() bool  { return len(t.ArraySizes) > 0 }
func (t *Type) IsStruct() bool { return t.Basic == Struct }

// ArraySize returns the first declared array bound, or 0.
func (t *Type) ArraySize() int {
	if len(t.ArraySizes) == 0 {
		return 0
	}
	return t.ArraySizes[0]
}

// MangledName returns the canonical key of the type used for overload
// resolution and built-in lookup. Two types are interchangeable for
// overloading iff their mangled names are equal.
func (t *Type) MangledName() string {
	if t.mangled == "" {
		t.mangled = string(t.buildMangledName(make([]byte, 0, 16)))
	}
	return t.mangled
}

// AppendMangledName appends the parameter form of the key, terminated by ';'.
func (t *Type) AppendMangledName(buf []byte) []byte {
	buf = append(buf, t.MangledName()...)
	return append(buf, ';')
}

func (t *Type) buildMangledName(buf []byte) []byte {
	if t.IsMatrix() {
		buf = append(buf, 'm')
	} else if t.IsVector() {
		buf = append(buf, 'v')
	}

	switch t.Basic {
	case SamplerKind:
		buf = t.Sampler.appendMangled(buf)
	case Struct:
		buf = append(buf, "struct-"...)
		buf = append(buf, t.TypeName...)
		for _, f := range t.Fields {
			buf = append(buf, '-')
			buf = f.Type.buildMangledName(buf)
		}
	default:
		if c := t.Basic.mangleChar(); c != 0 {
			buf = append(buf, c)
		}
	}

	// dimensions never exceed a single digit
	if t.VectorSize > 0 {
		buf = append(buf, byte('0'+t.VectorSize))
	} else {
		buf = append(buf, byte('0'+t.MatrixCols), byte('0'+t.MatrixRows))
	}

	if t.IsArray() {
		buf = append(buf, '[')
		buf = strconv.AppendInt(buf, int64(t.ArraySizes[0]), 10)
		buf = append(buf, ']')
	}
	return buf
}

// SameShape reports whether a and b are interchangeable for overloading.
func SameShape(a, b *Type) bool {
	return a.MangledName() == b.MangledName()
}

// StructSize returns the summed object size of the members. It is computed
// once; later structural changes are not observed.
func (t *Type) StructSize() int {
	if !t.IsStruct() {
		panic("StructSize: not a struct: " + t.String())
	}
	if t.structSize == 0 {
		for _, f := range t.Fields {
			t.structSize += f.Type.ObjectSize()
		}
	}
	return t.structSize
}

// ObjectSize returns the number of scalar components of the type.
func (t *Type) ObjectSize() int {
	var size int
	switch {
	case t.IsStruct():
		size = t.StructSize()
	case t.IsMatrix():
		size = t.MatrixCols * t.MatrixRows
	default:
		size = t.VectorSize
	}
	if t.IsArray() && t.ArraySizes[0] > 0 {
		size *= t.ArraySizes[0]
	}
	return size
}

// BasicTypeString returns the sampler spelling for samplers and the basic kind otherwise.
func (t *Type) BasicTypeString() string {
	if t.Basic == SamplerKind {
		return t.Sampler.String()
	}
	return t.Basic.String()
}

// StorageQualifierString returns the storage qualifier spelling.
func (t *Type) StorageQualifierString() string {
	return t.Qualifier.Storage.String()
}

// String renders the type for diagnostics, e.g. "uniform 4-component vector of float".
func (t *Type) String() string {
	var b strings.Builder
	if p := t.Qualifier.Precision.String(); p != "" {
		b.WriteString(p)
		b.WriteByte(' ')
	}
	if t.Qualifier.Storage != Temporary && t.Qualifier.Storage != Global {
		b.WriteString(t.Qualifier.Storage.String())
		b.WriteByte(' ')
	}
	if t.IsArray() {
		b.WriteString("array of ")
	}
	switch {
	case t.IsMatrix():
		b.WriteString(strconv.Itoa(t.MatrixCols))
		b.WriteByte('X')
		b.WriteString(strconv.Itoa(t.MatrixRows))
		b.WriteString(" matrix of ")
	case t.IsVector():
		b.WriteString(strconv.Itoa(t.VectorSize))
		b.WriteString("-component vector of ")
	}
	b.WriteString(t.BasicTypeString())
	if t.IsStruct() && t.TypeName != "" {
		b.WriteByte(' ')
		b.WriteString(t.TypeName)
	}
	return b.String()
}

// DeepCopy returns a copy sharing no storage with t. Caches are carried over.
func (t *Type) DeepCopy() *Type {
	if t == nil {
		return nil
	}
	c := *t
	if t.ArraySizes != nil {
		c.ArraySizes = append([]int(nil), t.ArraySizes...)
	}
	if t.Fields != nil {
		c.Fields = make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			c.Fields[i] = Field{Name: f.Name, Type: f.Type.DeepCopy()}
		}
	}
	return &c
}
