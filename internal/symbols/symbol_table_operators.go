package symbols

// Operator is the machine operation a built-in function lowers to.
type Operator int

const (
	OpNull Operator = iota

	// angle and trigonometry
	OpRadians
	OpDegrees
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan

	// exponential
	OpPow
	OpExp
	OpLog
	OpExp2
	OpLog2
	OpSqrt
	OpInverseSqrt

	// common
	OpAbs
	OpSign
	OpFloor
	OpCeil
	OpFract
	OpMod
	OpMin
	OpMax
	OpClamp
	OpMix
	OpStep
	OpSmoothStep

	// geometric
	OpLength
	OpDistance
	OpDot
	OpCross
	OpNormalize
	OpFaceForward
	OpReflect
	OpRefract

	// matrix
	OpMatrixCompMult
	OpOuterProduct
	OpTranspose
	OpDeterminant
	OpMatrixInverse

	// vector relational
	OpLessThan
	OpGreaterThan
	OpLessThanEqual
	OpGreaterThanEqual
	OpVectorEqual
	OpVectorNotEqual
	OpAny
	OpAll
	OpVectorLogicalNot

	// fragment processing
	OpDPdx
	OpDPdy
	OpFwidth

	// geometry
	OpEmitVertex
	OpEndPrimitive

	numOperators
)

// builtInOperatorNames maps each operator to the built-in function name that
// lowers to it.
var builtInOperatorNames = [...]string{
	OpNull:             "",
	OpRadians:          "radians",
	OpDegrees:          "degrees",
	OpSin:              "sin",
	OpCos:              "cos",
	OpTan:              "tan",
	OpAsin:             "asin",
	OpAcos:             "acos",
	OpAtan:             "atan",
	OpPow:              "pow",
	OpExp:              "exp",
	OpLog:              "log",
	OpExp2:             "exp2",
	OpLog2:             "log2",
	OpSqrt:             "sqrt",
	OpInverseSqrt:      "inversesqrt",
	OpAbs:              "abs",
	OpSign:             "sign",
	OpFloor:            "floor",
	OpCeil:             "ceil",
	OpFract:            "fract",
	OpMod:              "mod",
	OpMin:              "min",
	OpMax:              "max",
	OpClamp:            "clamp",
	OpMix:              "mix",
	OpStep:             "step",
	OpSmoothStep:       "smoothstep",
	OpLength:           "length",
	OpDistance:         "distance",
	OpDot:              "dot",
	OpCross:            "cross",
	OpNormalize:        "normalize",
	OpFaceForward:      "faceforward",
	OpReflect:          "reflect",
	OpRefract:          "refract",
	OpMatrixCompMult:   "matrixCompMult",
	OpOuterProduct:     "outerProduct",
	OpTranspose:        "transpose",
	OpDeterminant:      "determinant",
	OpMatrixInverse:    "inverse",
	OpLessThan:         "lessThan",
	OpGreaterThan:      "greaterThan",
	OpLessThanEqual:    "lessThanEqual",
	OpGreaterThanEqual: "greaterThanEqual",
	OpVectorEqual:      "equal",
	OpVectorNotEqual:   "notEqual",
	OpAny:              "any",
	OpAll:              "all",
	OpVectorLogicalNot: "not",
	OpDPdx:             "dFdx",
	OpDPdy:             "dFdy",
	OpFwidth:           "fwidth",
	OpEmitVertex:       "EmitVertex",
	OpEndPrimitive:     "EndPrimitive",
}

var operatorsByName = func() map[string]Operator {
	m := make(map[string]Operator, numOperators)
	for op := OpNull + 1; op < numOperators; op++ {
		m[builtInOperatorNames[op]] = op
	}
	return m
}()

// String returns the built-in function name, or "null".
func (op Operator) String() string {
	if op <= OpNull || op >= numOperators {
		return "null"
	}
	return builtInOperatorNames[op]
}

// OperatorByName looks up the operator a built-in function name lowers to.
func OperatorByName(name string) (Operator, bool) {
	op, ok := operatorsByName[name]
	return op, ok
}

// BuiltInOperatorNames returns every built-in function name with an operator, in operator order.
func BuiltInOperatorNames() []string {
	names := make([]string, 0, numOperators-1)
	for op := OpNull + 1; op < numOperators; op++ {
		names = append(names, builtInOperatorNames[op])
	}
	return names
}
