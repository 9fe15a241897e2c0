// Package export renders symbol tables as protobuf Struct snapshots, for
// tools that want the built-in environment without linking the front end.
package export

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/symbols"
)

// Format selects the snapshot encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatBinary Format = "binary"
)

// Formats lists the accepted encodings in CLI order.
var Formats = []string{string(FormatJSON), string(FormatBinary)}

// Meta identifies where a snapshot comes from.
type Meta struct {
	Session string
	Env     config.Environment
}

// Snapshot describes every level of table, outermost first.
func Snapshot(table *symbols.SymbolTable, meta Meta) (*structpb.Struct, error) {
	levels := make([]interface{}, 0, table.Depth())
	for i := 0; i < table.Depth(); i++ {
		levels = append(levels, level(table, i))
	}
	return structpb.NewStruct(map[string]interface{}{
		"session": meta.Session,
		"environment": map[string]interface{}{
			"version": meta.Env.Version,
			"profile": meta.Env.Profile,
			"stage":   meta.Env.Stage,
		},
		"maxSymbolId": table.MaxSymbolID(),
		"levels":      levels,
	})
}

func level(table *symbols.SymbolTable, i int) map[string]interface{} {
	l := table.Level(i)
	keys := l.Keys()
	syms := l.Symbols()
	list := make([]interface{}, 0, len(syms))
	for j, sym := range syms {
		list = append(list, symbol(keys[j], sym))
	}
	return map[string]interface{}{
		"level":   i,
		"builtIn": i < table.AdoptedLevels(),
		"frozen":  l.IsFrozen(),
		"symbols": list,
	}
}

func symbol(key string, sym symbols.Symbol) map[string]interface{} {
	out := map[string]interface{}{
		"key":  key,
		"name": sym.Name(),
		"kind": sym.Kind().String(),
		"id":   sym.UniqueID(),
	}
	if exts := sym.Extensions(); len(exts) > 0 {
		out["extensions"] = stringList(exts)
	}

	switch s := sym.(type) {
	case *symbols.Function:
		out["returnType"] = s.ReturnType().String()
		if s.Op() != symbols.OpNull {
			out["op"] = s.Op().String()
		}
		params := make([]interface{}, 0, s.ParamCount())
		for i := 0; i < s.ParamCount(); i++ {
			p := s.Param(i)
			params = append(params, map[string]interface{}{
				"name":    p.Name,
				"type":    p.Type.String(),
				"mangled": p.Type.MangledName(),
			})
		}
		out["params"] = params
	case *symbols.Variable:
		out["type"] = s.Type().String()
		out["mangled"] = s.Type().MangledName()
		if values := s.ConstArray(); len(values) > 0 {
			list := make([]interface{}, 0, len(values))
			for _, v := range values {
				list = append(list, v.String())
			}
			out["value"] = list
		}
	case *symbols.AnonMember:
		out["type"] = s.Type().String()
		out["container"] = s.Container().Name()
		out["member"] = s.MemberNumber()
	}
	return out
}

func stringList(list []string) []interface{} {
	out := make([]interface{}, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}

// Encode serializes a snapshot.
func Encode(snapshot *structpb.Struct, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(snapshot)
	case FormatBinary:
		return proto.MarshalOptions{Deterministic: true}.Marshal(snapshot)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Decode parses a snapshot written by Encode.
func Decode(data []byte, format Format) (*structpb.Struct, error) {
	snapshot := &structpb.Struct{}
	var err error
	switch format {
	case FormatJSON:
		err = protojson.Unmarshal(data, snapshot)
	case FormatBinary:
		err = proto.Unmarshal(data, snapshot)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s snapshot: %w", format, err)
	}
	return snapshot, nil
}
