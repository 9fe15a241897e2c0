package typesystem

import (
	"strconv"
	"strings"
)

var scalarSpellings = map[string]BasicType{
	"void":   Void,
	"float":  Float,
	"double": Double,
	"int":    Int,
	"uint":   Uint,
	"bool":   Bool,
}

// vector and matrix prefixes: "" float, 'd' double, 'i' int, 'u' uint, 'b' bool
var componentPrefixes = map[byte]BasicType{
	'd': Double,
	'i': Int,
	'u': Uint,
	'b': Bool,
}

// ParseTypeName parses a GLSL type spelling such as "vec3", "mat2x4",
// "isampler2DArray", "image3D" or "float[4]".
func ParseTypeName(spelling string) (*Type, error) {
	name := strings.TrimSpace(spelling)
	arraySize := -1
	if open := strings.IndexByte(name, '['); open >= 0 {
		if !strings.HasSuffix(name, "]") {
			return nil, &TypeNameError{Spelling: spelling, Reason: "unterminated array size"}
		}
		n, err := strconv.Atoi(name[open+1 : len(name)-1])
		if err != nil || n <= 0 {
			return nil, &TypeNameError{Spelling: spelling, Reason: "bad array size"}
		}
		arraySize = n
		name = strings.TrimSpace(name[:open])
	}

	t, ok := parseBase(name)
	if !ok {
		return nil, &TypeNameError{Spelling: spelling}
	}
	if arraySize > 0 {
		t.WithArraySize(arraySize)
	}
	return t, nil
}

func parseBase(name string) (*Type, bool) {
	if basic, ok := scalarSpellings[name]; ok {
		return NewScalar(basic), true
	}

	if t, ok := parseComposite(Float, name); ok {
		return t, true
	}
	if len(name) > 0 {
		if basic, ok := componentPrefixes[name[0]]; ok {
			return parseComposite(basic, name[1:])
		}
	}
	return nil, false
}

// parseComposite parses a vector, matrix, sampler or image spelling whose
// component prefix has already been stripped.
func parseComposite(basic BasicType, rest string) (*Type, bool) {
	switch {
	case strings.HasPrefix(rest, "vec"):
		n, ok := singleDigit(rest[3:])
		if !ok || n < 2 || n > 4 {
			return nil, false
		}
		return NewVector(basic, n), true
	case strings.HasPrefix(rest, "mat"):
		if basic != Float && basic != Double {
			return nil, false
		}
		dims := rest[3:]
		if cols, ok := singleDigit(dims); ok {
			return NewMatrix(basic, cols, cols), cols >= 2 && cols <= 4
		}
		if len(dims) != 3 || dims[1] != 'x' {
			return nil, false
		}
		cols, ok1 := singleDigit(dims[:1])
		rows, ok2 := singleDigit(dims[2:])
		if !ok1 || !ok2 || cols < 2 || cols > 4 || rows < 2 || rows > 4 {
			return nil, false
		}
		return NewMatrix(basic, cols, rows), true
	case strings.HasPrefix(rest, "sampler"), strings.HasPrefix(rest, "image"):
		if basic != Float && basic != Int && basic != Uint {
			return nil, false
		}
		s, ok := parseSampler(rest)
		if !ok {
			return nil, false
		}
		s.Type = basic
		return NewSampler(s), true
	}
	return nil, false
}

func parseSampler(rest string) (Sampler, bool) {
	var s Sampler
	if strings.HasPrefix(rest, "image") {
		s.Image = true
		rest = rest[len("image"):]
	} else {
		rest = rest[len("sampler"):]
	}

	// longest spelling first: "2DRect" before "2D"
	for _, d := range []SamplerDim{DimRect, DimBuffer, DimCube, Dim1D, Dim2D, Dim3D} {
		if strings.HasPrefix(rest, d.String()) {
			s.Dim = d
			rest = rest[len(d.String()):]
			break
		}
	}
	if s.Dim == DimNone {
		return s, false
	}
	if strings.HasPrefix(rest, "Array") {
		s.Arrayed = true
		rest = rest[len("Array"):]
	}
	if strings.HasPrefix(rest, "Shadow") {
		if s.Image {
			return s, false
		}
		s.Shadow = true
		rest = rest[len("Shadow"):]
	}
	return s, rest == ""
}

func singleDigit(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '0'), true
}
