package vm

import (
	"math"

	"github.com/josephg/hyperlines/pkg/ast"
)

// toFloat64 converts a numeric runtime value to float64.
func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toNatural converts a numeric value to a non-negative int, truncating
// any fraction.
func toNatural(v any) (int, bool) {
	f, ok := toFloat64(v)
	if !ok || math.IsNaN(f) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func toPoint(v any) (ast.Point, bool) {
	p, ok := v.(ast.Point)
	return p, ok
}

func toPoints(v any) ([]ast.Point, bool) {
	pts, ok := v.([]ast.Point)
	return pts, ok
}

// Argument accessors used by native functions and blocks. Each reports a
// typed error naming the owner and position.

func scalarArg(owner string, args []any, i int) (float64, error) {
	f, ok := toFloat64(args[i])
	if !ok {
		return 0, NewInvalidArgumentError(owner, i, "a number", args[i])
	}
	return f, nil
}

func naturalArg(owner string, args []any, i int) (int, error) {
	n, ok := toNatural(args[i])
	if !ok {
		return 0, NewInvalidArgumentError(owner, i, "a natural number", args[i])
	}
	return n, nil
}

func pointArg(owner string, args []any, i int) (ast.Point, error) {
	p, ok := toPoint(args[i])
	if !ok {
		return ast.Point{}, NewInvalidArgumentError(owner, i, "a point", args[i])
	}
	return p, nil
}

func pointsArg(owner string, args []any, i int) ([]ast.Point, error) {
	pts, ok := toPoints(args[i])
	if !ok {
		return nil, NewInvalidArgumentError(owner, i, "a point array", args[i])
	}
	return pts, nil
}

func callableArg(owner string, args []any, i int) (Callable, error) {
	fn, ok := args[i].(Callable)
	if !ok {
		return nil, NewInvalidArgumentError(owner, i, "a function", args[i])
	}
	return fn, nil
}

func checkArity(owner string, args []any, want int) error {
	if len(args) != want {
		return NewArityMismatchError("arguments of", owner, want, len(args))
	}
	return nil
}
