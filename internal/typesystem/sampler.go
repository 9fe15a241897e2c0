package typesystem

import "strings"

// SamplerDim is the dimensionality of a sampler or image.
type SamplerDim int

const (
	DimNone SamplerDim = iota
	Dim1D
	Dim2D
	Dim3D
	DimCube
	DimRect
	DimBuffer
)

var dimSpellings = [...]string{
	DimNone:   "",
	Dim1D:     "1D",
	Dim2D:     "2D",
	Dim3D:     "3D",
	DimCube:   "Cube",
	DimRect:   "2DRect",
	DimBuffer: "Buffer",
}

func (d SamplerDim) String() string {
	if d < 0 || int(d) >= len(dimSpellings) {
		return ""
	}
	return dimSpellings[d]
}

// mangle returns the dimensionality marker of a mangled sampler key.
func (d SamplerDim) mangle() string {
	switch d {
	case Dim1D:
		return "1"
	case Dim2D:
		return "2"
	case Dim3D:
		return "3"
	case DimCube:
		return "C"
	case DimRect:
		return "R2"
	case DimBuffer:
		return "B"
	default:
		return ""
	}
}

// Sampler describes the configuration of a sampler or image type.
// Type is the component kind returned by a lookup: Float, Int or Uint.
type Sampler struct {
	Type    BasicType
	Dim     SamplerDim
	Arrayed bool
	Shadow  bool
	Image   bool
}

// String returns the GLSL spelling, e.g. "isampler2DArray" or "image3D".
func (s Sampler) String() string {
	var b strings.Builder
	switch s.Type {
	case Int:
		b.WriteByte('i')
	case Uint:
		b.WriteByte('u')
	}
	if s.Image {
		b.WriteString("image")
	} else {
		b.WriteString("sampler")
	}
	b.WriteString(s.Dim.String())
	if s.Arrayed {
		b.WriteString("Array")
	}
	if s.Shadow {
		b.WriteString("Shadow")
	}
	return b.String()
}

func (s Sampler) appendMangled(buf []byte) []byte {
	switch s.Type {
	case Int:
		buf = append(buf, 'i')
	case Uint:
		buf = append(buf, 'u')
	}
	if s.Image {
		buf = append(buf, 'I')
	} else {
		buf = append(buf, 's')
	}
	if s.Arrayed {
		buf = append(buf, 'A')
	}
	if s.Shadow {
		buf = append(buf, 'S')
	}
	return append(buf, s.Dim.mangle()...)
}
