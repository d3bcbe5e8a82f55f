// Package vm provides the built-in functions of the hyperlines language.
package vm

import (
	"math"

	"github.com/josephg/hyperlines/pkg/ast"
)

func builtinFunctions() []*FunctionDef {
	return []*FunctionDef{
		{
			Name:       "Vec",
			Params:     []ast.Type{ast.Scalar, ast.Scalar},
			ReturnType: ast.Vec2,
			Fn:         builtinVec,
		},
		{
			Name:       "addVecs",
			Params:     []ast.Type{ast.Vec2, ast.Vec2},
			ReturnType: ast.Vec2,
			Fn:         builtinAddVecs,
		},
		{
			Name:       "subVecs",
			Params:     []ast.Type{ast.Vec2, ast.Vec2},
			ReturnType: ast.Vec2,
			Fn:         builtinSubVecs,
		},
		{
			Name:       "scaleVec",
			Params:     []ast.Type{ast.Vec2, ast.Scalar},
			ReturnType: ast.Vec2,
			Fn:         builtinScaleVec,
		},
		{
			Name:       "rotateVec",
			Params:     []ast.Type{ast.Vec2, ast.Scalar},
			ReturnType: ast.Vec2,
			Fn:         builtinRotateVec,
		},
		{
			Name:       "add",
			Params:     []ast.Type{ast.Scalar, ast.Scalar},
			ReturnType: ast.Scalar,
			Fn:         scalarOp("add", func(a, b float64) float64 { return a + b }),
		},
		{
			Name:       "mul",
			Params:     []ast.Type{ast.Scalar, ast.Scalar},
			ReturnType: ast.Scalar,
			Fn:         scalarOp("mul", func(a, b float64) float64 { return a * b }),
		},
		{
			Name:       "sin",
			Params:     []ast.Type{ast.Scalar},
			ReturnType: ast.Scalar,
			Fn:         scalarFn("sin", math.Sin),
		},
		{
			Name:       "cos",
			Params:     []ast.Type{ast.Scalar},
			ReturnType: ast.Scalar,
			Fn:         scalarFn("cos", math.Cos),
		},
	}
}

func builtinVec(args []any) (any, error) {
	if err := checkArity("Vec", args, 2); err != nil {
		return nil, err
	}
	x, err := scalarArg("Vec", args, 0)
	if err != nil {
		return nil, err
	}
	y, err := scalarArg("Vec", args, 1)
	if err != nil {
		return nil, err
	}
	return ast.Point{X: x, Y: y}, nil
}

func builtinAddVecs(args []any) (any, error) {
	a, b, err := twoPoints("addVecs", args)
	if err != nil {
		return nil, err
	}
	return a.Add(b), nil
}

func builtinSubVecs(args []any) (any, error) {
	a, b, err := twoPoints("subVecs", args)
	if err != nil {
		return nil, err
	}
	return ast.Point{X: a.X - b.X, Y: a.Y - b.Y}, nil
}

func builtinScaleVec(args []any) (any, error) {
	p, k, err := pointAndScalar("scaleVec", args)
	if err != nil {
		return nil, err
	}
	return ast.Point{X: p.X * k, Y: p.Y * k}, nil
}

// builtinRotateVec rotates a point about the origin by an angle in radians.
func builtinRotateVec(args []any) (any, error) {
	p, theta, err := pointAndScalar("rotateVec", args)
	if err != nil {
		return nil, err
	}
	sin, cos := math.Sincos(theta)
	return ast.Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}, nil
}

func twoPoints(owner string, args []any) (ast.Point, ast.Point, error) {
	if err := checkArity(owner, args, 2); err != nil {
		return ast.Point{}, ast.Point{}, err
	}
	a, err := pointArg(owner, args, 0)
	if err != nil {
		return ast.Point{}, ast.Point{}, err
	}
	b, err := pointArg(owner, args, 1)
	if err != nil {
		return ast.Point{}, ast.Point{}, err
	}
	return a, b, nil
}

func pointAndScalar(owner string, args []any) (ast.Point, float64, error) {
	if err := checkArity(owner, args, 2); err != nil {
		return ast.Point{}, 0, err
	}
	p, err := pointArg(owner, args, 0)
	if err != nil {
		return ast.Point{}, 0, err
	}
	k, err := scalarArg(owner, args, 1)
	if err != nil {
		return ast.Point{}, 0, err
	}
	return p, k, nil
}

func scalarOp(name string, op func(a, b float64) float64) NativeFunc {
	return func(args []any) (any, error) {
		if err := checkArity(name, args, 2); err != nil {
			return nil, err
		}
		a, err := scalarArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		b, err := scalarArg(name, args, 1)
		if err != nil {
			return nil, err
		}
		return op(a, b), nil
	}
}

func scalarFn(name string, fn func(float64) float64) NativeFunc {
	return func(args []any) (any, error) {
		if err := checkArity(name, args, 1); err != nil {
			return nil, err
		}
		a, err := scalarArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return fn(a), nil
	}
}
