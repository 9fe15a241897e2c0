package typesystem

// BasicType is the basic kind of a type. Arrays, vectors, sampler details,
// etc., are orthogonal to this.
type BasicType int

const (
	Void BasicType = iota
	Float
	Double
	Int
	Uint
	Bool
	SamplerKind
	Struct

	NumBasicTypes
)

// String returns the name used in diagnostics.
func (b BasicType) String() string {
	switch b {
	case Void:
		return "void"
	case Float:
		return "float"
	case Double:
		return "double"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Bool:
		return "bool"
	case SamplerKind:
		return "sampler/image"
	case Struct:
		return "structure"
	default:
		return "unknown type"
	}
}

// mangleChar is the single character emitted for non-sampler, non-struct kinds.
func (b BasicType) mangleChar() byte {
	switch b {
	case Float:
		return 'f'
	case Double:
		return 'd'
	case Int:
		return 'i'
	case Uint:
		return 'u'
	case Bool:
		return 'b'
	default:
		return 0
	}
}

// StorageQualifier says what can be read or written, and where a back end
// allocates a variable. Built-ins are peers of varying and uniform.
type StorageQualifier int

const (
	Temporary StorageQualifier = iota // within a function, read/write
	Global                            // read/write globals
	Const                             // user constants and non-output parameters
	Attribute                         // read only
	VaryingIn                         // read only, fragment shaders only
	VaryingOut                        // vertex shaders only, read/write
	Uniform                           // read only, vertex and fragment

	// parameters
	In
	Out
	InOut
	ConstReadOnly

	// read by vertex shader
	VertexID
	InstanceID

	// written by vertex shader
	Position
	PointSize
	ClipVertex

	// read by fragment shader
	Face
	FragCoord
	PointCoord

	// written by fragment shader
	FragColor
	FragDepth

	NumStorageQualifiers
)

var storageNames = [...]string{
	Temporary:     "temporary",
	Global:        "global",
	Const:         "const",
	Attribute:     "attribute",
	VaryingIn:     "varying in",
	VaryingOut:    "varying out",
	Uniform:       "uniform",
	In:            "in",
	Out:           "out",
	InOut:         "inout",
	ConstReadOnly: "const (read only)",
	VertexID:      "gl_VertexId",
	InstanceID:    "gl_InstanceId",
	Position:      "gl_Position",
	PointSize:     "gl_PointSize",
	ClipVertex:    "gl_ClipVertex",
	Face:          "gl_FrontFacing",
	FragCoord:     "gl_FragCoord",
	PointCoord:    "gl_PointCoord",
	FragColor:     "fragment out",
	FragDepth:     "gl_FragDepth",
}

// String returns the spelling shown in error messages.
func (q StorageQualifier) String() string {
	if q < 0 || q >= NumStorageQualifiers {
		return "unknown qualifier"
	}
	return storageNames[q]
}

// PrecisionQualifier is an ES precision qualifier.
type PrecisionQualifier int

const (
	PrecisionNone PrecisionQualifier = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

func (p PrecisionQualifier) String() string {
	switch p {
	case PrecisionNone:
		return ""
	case PrecisionLow:
		return "lowp"
	case PrecisionMedium:
		return "mediump"
	case PrecisionHigh:
		return "highp"
	default:
		return "unknown precision qualifier"
	}
}

// Qualifier groups the qualifiers carried by a Type.
type Qualifier struct {
	Storage   StorageQualifier
	Precision PrecisionQualifier
}
