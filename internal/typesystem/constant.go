package typesystem

import "strconv"

// ConstUnion holds one component of a compile-time constant.
type ConstUnion struct {
	Kind   BasicType
	IConst int32
	UConst uint32
	DConst float64
	BConst bool
}

func IntConst(v int32) ConstUnion     { return ConstUnion{Kind: Int, IConst: v} }
func UintConst(v uint32) ConstUnion   { return ConstUnion{Kind: Uint, UConst: v} }
func FloatConst(v float64) ConstUnion { return ConstUnion{Kind: Float, DConst: v} }
func BoolConst(v bool) ConstUnion     { return ConstUnion{Kind: Bool, BConst: v} }

func (c ConstUnion) String() string {
	switch c.Kind {
	case Int:
		return strconv.FormatInt(int64(c.IConst), 10)
	case Uint:
		return strconv.FormatUint(uint64(c.UConst), 10) + "u"
	case Float, Double:
		return strconv.FormatFloat(c.DConst, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(c.BConst)
	default:
		return "?"
	}
}

// ParseConst parses a literal of the given kind.
func ParseConst(kind BasicType, literal string) (ConstUnion, error) {
	switch kind {
	case Int:
		v, err := strconv.ParseInt(literal, 0, 32)
		if err != nil {
			return ConstUnion{}, err
		}
		return IntConst(int32(v)), nil
	case Uint:
		v, err := strconv.ParseUint(trimSuffix(literal, "u"), 0, 32)
		if err != nil {
			return ConstUnion{}, err
		}
		return UintConst(uint32(v)), nil
	case Float, Double:
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return ConstUnion{}, err
		}
		return ConstUnion{Kind: kind, DConst: v}, nil
	case Bool:
		v, err := strconv.ParseBool(literal)
		if err != nil {
			return ConstUnion{}, err
		}
		return BoolConst(v), nil
	default:
		return ConstUnion{}, &TypeNameError{Spelling: kind.String(), Reason: "no literal form"}
	}
}

func trimSuffix(s, suffix string) string {
	if len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}
