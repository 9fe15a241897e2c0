package builtins

import "strings"

// generic type names and the concrete types they stand for, by position
var generics = map[string][]string{
	"genType":  {"float", "vec2", "vec3", "vec4"},
	"genIType": {"int", "ivec2", "ivec3", "ivec4"},
	"genUType": {"uint", "uvec2", "uvec3", "uvec4"},
	"genBType": {"bool", "bvec2", "bvec3", "bvec4"},
	"genDType": {"double", "dvec2", "dvec3", "dvec4"},
	"vec":      {"vec2", "vec3", "vec4"},
	"ivec":     {"ivec2", "ivec3", "ivec4"},
	"uvec":     {"uvec2", "uvec3", "uvec4"},
	"bvec":     {"bvec2", "bvec3", "bvec4"},
	"mat":      {"mat2", "mat3", "mat4"},
}

// Expand returns one declaration per instantiation of the generic type
// names in decl. Every generic name in a declaration takes the same
// position, so "bvec lessThan(vec, vec)" yields three prototypes, the first
// being "bvec2 lessThan(vec2, vec2)". A declaration without generics is
// returned as is.
func Expand(decl string) ([]string, error) {
	n, mixed := 0, false
	mapWords(decl, func(word string) string {
		if list, ok := generics[word]; ok {
			if n != 0 && len(list) != n {
				mixed = true
			}
			n = len(list)
		}
		return word
	})
	if n == 0 {
		return []string{decl}, nil
	}
	if mixed {
		return nil, &DeclError{Decl: decl, Reason: "generic types of different lengths"}
	}

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, mapWords(decl, func(word string) string {
			if list, ok := generics[word]; ok {
				return list[i]
			}
			return word
		}))
	}
	return out, nil
}

// mapWords rewrites every identifier of s through fn and keeps everything
// else.
func mapWords(s string, fn func(string) string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && isIdentByte(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(fn(s[start:i]))
			start = -1
		}
		if i < len(s) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
