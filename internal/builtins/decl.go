package builtins

import (
	"fmt"
	"strings"

	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/manifest"
	"github.com/funvibe/glslsym/internal/symbols"
	"github.com/funvibe/glslsym/internal/typesystem"
)

// DeclError reports a manifest declaration that cannot be parsed.
type DeclError struct {
	Decl   string
	Reason string
}

func (e *DeclError) Error() string {
	return fmt.Sprintf("declaration %q: %s", e.Decl, e.Reason)
}

var precisions = map[string]typesystem.PrecisionQualifier{
	"lowp":    typesystem.PrecisionLow,
	"mediump": typesystem.PrecisionMedium,
	"highp":   typesystem.PrecisionHigh,
}

var parameterQualifiers = map[string]typesystem.StorageQualifier{
	"in":    typesystem.In,
	"out":   typesystem.Out,
	"inout": typesystem.InOut,
	"const": typesystem.ConstReadOnly,
}

// storage keywords of a variable declaration; "varying" depends on the stage
var variableQualifiers = map[string]typesystem.StorageQualifier{
	"const":     typesystem.Const,
	"uniform":   typesystem.Uniform,
	"attribute": typesystem.Attribute,
	"in":        typesystem.VaryingIn,
	"out":       typesystem.VaryingOut,
}

// built-in storage named by the manifest "storage" field
var builtInStorage = map[string]typesystem.StorageQualifier{
	"vertex_id":    typesystem.VertexID,
	"instance_id":  typesystem.InstanceID,
	"position":     typesystem.Position,
	"point_size":   typesystem.PointSize,
	"clip_vertex":  typesystem.ClipVertex,
	"front_facing": typesystem.Face,
	"frag_coord":   typesystem.FragCoord,
	"point_coord":  typesystem.PointCoord,
	"frag_color":   typesystem.FragColor,
	"frag_depth":   typesystem.FragDepth,
}

var blockStorage = map[string]typesystem.StorageQualifier{
	"in":      typesystem.VaryingIn,
	"out":     typesystem.VaryingOut,
	"uniform": typesystem.Uniform,
}

// ParseFunction parses a prototype such as "vec4 texture2D(sampler2D, vec2)"
// or "void modf(genType x, out genType i)". Generic type names must already
// be expanded.
func ParseFunction(decl string) (*symbols.Function, error) {
	open := strings.IndexByte(decl, '(')
	if open < 0 || !strings.HasSuffix(strings.TrimSpace(decl), ")") {
		return nil, &DeclError{Decl: decl, Reason: "missing parameter list"}
	}
	head := strings.Fields(decl[:open])
	if len(head) < 2 {
		return nil, &DeclError{Decl: decl, Reason: "expected return type and name"}
	}
	name := head[len(head)-1]
	precision, rest, err := leadingPrecision(decl, head[:len(head)-1])
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, &DeclError{Decl: decl, Reason: "expected one return type"}
	}
	ret, err := parseType(decl, rest[0])
	if err != nil {
		return nil, err
	}
	ret.Qualifier.Precision = precision

	f := symbols.NewFunction(name, ret, symbols.OpNull)
	body := strings.TrimSpace(decl[open+1 : strings.LastIndexByte(decl, ')')])
	if body == "" || body == "void" {
		return f, nil
	}
	for _, p := range strings.Split(body, ",") {
		param, err := parseParameter(decl, p)
		if err != nil {
			return nil, err
		}
		f.AddParameter(param)
	}
	return f, nil
}

func parseParameter(decl, text string) (symbols.Parameter, error) {
	words := strings.Fields(text)
	storage := typesystem.In
	isConst := false
	for len(words) > 0 {
		q, ok := parameterQualifiers[words[0]]
		if !ok {
			break
		}
		storage = q
		isConst = isConst || q == typesystem.ConstReadOnly
		words = words[1:]
	}
	precision, words, err := leadingPrecision(decl, words)
	if err != nil {
		return symbols.Parameter{}, err
	}

	var typeName, name string
	switch len(words) {
	case 1:
		typeName = words[0]
	case 2:
		typeName, name = splitArrayName(words[0], words[1])
	default:
		return symbols.Parameter{}, &DeclError{Decl: decl, Reason: fmt.Sprintf("bad parameter %q", strings.TrimSpace(text))}
	}
	typ, err := parseType(decl, typeName)
	if err != nil {
		return symbols.Parameter{}, err
	}
	typ.Qualifier = typesystem.Qualifier{Storage: storage, Precision: precision}
	return symbols.Parameter{Name: name, Type: typ, Const: isConst}, nil
}

// ParseVariable builds a built-in variable of stage from its manifest entry.
func ParseVariable(v manifest.Variable, stage string) (*symbols.Variable, error) {
	words := strings.Fields(v.Decl)
	storage := typesystem.Global
	if len(words) > 0 {
		if words[0] == "varying" {
			storage = varying(stage)
			words = words[1:]
		} else if q, ok := variableQualifiers[words[0]]; ok {
			storage = q
			words = words[1:]
		}
	}
	if v.Storage != "" {
		q, ok := builtInStorage[v.Storage]
		if !ok {
			return nil, &DeclError{Decl: v.Decl, Reason: fmt.Sprintf("unknown storage %q", v.Storage)}
		}
		storage = q
	}

	typ, name, err := parseTypedName(v.Decl, words)
	if err != nil {
		return nil, err
	}
	typ.Qualifier.Storage = storage

	variable := symbols.NewVariable(name, typ, false)
	if v.Value == "" {
		return variable, nil
	}
	if storage != typesystem.Const {
		return nil, &DeclError{Decl: v.Decl, Reason: "value given for a non-constant"}
	}
	if typ.IsStruct() || typ.Basic == typesystem.SamplerKind {
		return nil, &DeclError{Decl: v.Decl, Reason: "value given for an opaque or struct type"}
	}
	var values []typesystem.ConstUnion
	for _, lit := range strings.Split(v.Value, ",") {
		c, err := typesystem.ParseConst(typ.Basic, strings.TrimSpace(lit))
		if err != nil {
			return nil, &DeclError{Decl: v.Decl, Reason: err.Error()}
		}
		values = append(values, c)
	}
	variable.SetConstArray(values)
	return variable, nil
}

// ParseBlock builds the variable of a built-in interface block. The variable
// is nameless when the block has no instance name.
func ParseBlock(b manifest.Block) (*symbols.Variable, error) {
	storage, ok := blockStorage[b.Storage]
	if !ok {
		return nil, &DeclError{Decl: b.TypeName, Reason: fmt.Sprintf("bad block storage %q", b.Storage)}
	}
	fields := make([]typesystem.Field, 0, len(b.Fields))
	for _, text := range b.Fields {
		typ, name, err := parseTypedName(text, strings.Fields(text))
		if err != nil {
			return nil, err
		}
		typ.Qualifier.Storage = storage
		fields = append(fields, typesystem.Field{Name: name, Type: typ})
	}
	typ := typesystem.NewStruct(b.TypeName, fields).WithStorage(storage)
	return symbols.NewVariable(b.Instance, typ, false), nil
}

// parseTypedName parses "[precision] type name[N]".
func parseTypedName(decl string, words []string) (*typesystem.Type, string, error) {
	precision, words, err := leadingPrecision(decl, words)
	if err != nil {
		return nil, "", err
	}
	if len(words) != 2 {
		return nil, "", &DeclError{Decl: decl, Reason: "expected type and name"}
	}
	typeName, name := splitArrayName(words[0], words[1])
	typ, err := parseType(decl, typeName)
	if err != nil {
		return nil, "", err
	}
	typ.Qualifier.Precision = precision
	return typ, name, nil
}

func leadingPrecision(decl string, words []string) (typesystem.PrecisionQualifier, []string, error) {
	if len(words) == 0 {
		return typesystem.PrecisionNone, words, nil
	}
	if p, ok := precisions[words[0]]; ok {
		if len(words) > 1 {
			if _, twice := precisions[words[1]]; twice {
				return 0, nil, &DeclError{Decl: decl, Reason: "more than one precision"}
			}
		}
		return p, words[1:], nil
	}
	return typesystem.PrecisionNone, words, nil
}

// splitArrayName moves an array suffix from the name to the type:
// ("float", "gl_ClipDistance[8]") becomes ("float[8]", "gl_ClipDistance").
func splitArrayName(typeName, name string) (string, string) {
	if open := strings.IndexByte(name, '['); open >= 0 {
		return typeName + name[open:], name[:open]
	}
	return typeName, name
}

func parseType(decl, spelling string) (*typesystem.Type, error) {
	typ, err := typesystem.ParseTypeName(spelling)
	if err != nil {
		return nil, fmt.Errorf("declaration %q: %w", decl, err)
	}
	return typ, nil
}

func varying(stage string) typesystem.StorageQualifier {
	if stage == config.StageFragment {
		return typesystem.VaryingIn
	}
	return typesystem.VaryingOut
}
