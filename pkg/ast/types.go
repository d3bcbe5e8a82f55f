// Package ast defines the program tree of the hyperlines block language:
// semantic types, expressions, blocks and the builder helpers used to
// author programs by hand.
package ast

// Type is the semantic type an expression must produce.
type Type int

const (
	Scalar Type = iota
	Natural
	Vec2
	Vec2Array
	ScalarArray
	NaturalArray
	VecToVec
)

var typeNames = map[Type]string{
	Scalar:       "Scalar",
	Natural:      "Natural",
	Vec2:         "Vec2",
	Vec2Array:    "Vec2Array",
	ScalarArray:  "ScalarArray",
	NaturalArray: "NaturalArray",
	VecToVec:     "VecToVec",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Types lists every semantic type in declaration order.
func Types() []Type {
	return []Type{Scalar, Natural, Vec2, Vec2Array, ScalarArray, NaturalArray, VecToVec}
}

// Function-typed values are opaque closures at runtime, so their shape is
// only known through these tables.
var (
	returnTypes = map[Type]Type{
		VecToVec: Vec2,
	}
	paramTypes = map[Type][]Type{
		VecToVec: {Vec2},
	}
)

// ReturnType returns the result type of a function type.
func ReturnType(t Type) (Type, bool) {
	rt, ok := returnTypes[t]
	return rt, ok
}

// ParamTypes returns the parameter types of a function type.
// The returned slice is a copy.
func ParamTypes(t Type) ([]Type, bool) {
	pts, ok := paramTypes[t]
	if !ok {
		return nil, false
	}
	return append([]Type(nil), pts...), true
}

// IsFunction reports whether values of t are callable.
func IsFunction(t Type) bool {
	_, ok := returnTypes[t]
	return ok
}
