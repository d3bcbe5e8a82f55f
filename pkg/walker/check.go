package walker

import (
	"fmt"
	"math"
	"slices"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/vm"
)

// Check verifies that b is a well-formed program: every block and
// function is registered, argument and binding counts match their
// definitions, leaf blocks have no body, and every expression produces
// the type its position requires. It returns the first problem found.
func Check(registry *vm.Registry, b *ast.Block) error {
	w := New(registry)
	var first error
	fail := func(err error) {
		if first == nil {
			first = err
		}
	}

	_, err := w.Walk(b, nil, Visitor{
		Expr: func(e ast.Expression, want ast.Type, types *TypeScope) ast.Expression {
			if err := w.checkExpr(e, want, types); err != nil {
				fail(err)
			}
			return e
		},
		Block: func(blk *ast.Block, types *TypeScope) *ast.Block {
			if err := w.checkBlock(blk); err != nil {
				fail(err)
			}
			return blk
		},
	})
	if err != nil {
		return err
	}
	return first
}

func (w *Walker) checkBlock(b *ast.Block) error {
	def, _ := w.registry.Block(b.Name)
	if !def.HasBody() {
		if len(b.Bindings) > 0 || len(b.Children) > 0 {
			return vm.NewRuntimeError(vm.ErrorArityMismatch,
				fmt.Sprintf("leaf block %s cannot have bindings or children", b.Name))
		}
		return nil
	}
	if len(b.Bindings) != len(def.Bindings) {
		return vm.NewArityMismatchError("bindings of block", b.Name, len(def.Bindings), len(b.Bindings))
	}
	return nil
}

func (w *Walker) checkExpr(e ast.Expression, want ast.Type, types *TypeScope) error {
	switch e := e.(type) {
	case *ast.Literal:
		have, ok := literalType(e.Value)
		if !ok {
			return vm.NewRuntimeError(vm.ErrorInvalidArgument, fmt.Sprintf("literal of type %T", e.Value))
		}
		if !assignable(have, want) {
			return vm.NewTypeMismatchError("literal", want, have)
		}

	case *ast.Variable:
		if have, ok := types.Get(e.Name); ok {
			if !assignable(have, want) {
				return vm.NewTypeMismatchError("variable "+e.Name, want, have)
			}
			return nil
		}
		fn, ok := w.registry.Function(e.Name)
		if !ok {
			return vm.NewUnboundNameError(e.Name)
		}
		if !functionMatches(fn, want) {
			return vm.NewRuntimeError(vm.ErrorTypeMismatch,
				fmt.Sprintf("function %s used where %s is expected", e.Name, want))
		}

	case *ast.Call:
		have, err := w.callType(e, types)
		if err != nil {
			return err
		}
		if !assignable(have, want) {
			return vm.NewTypeMismatchError("call result", want, have)
		}

	case *ast.Lambda:
		// Shape already verified by the walk.
	}
	return nil
}

func (w *Walker) callType(c *ast.Call, types *TypeScope) (ast.Type, error) {
	ref := c.Callee.(*ast.Variable)
	if t, ok := types.Get(ref.Name); ok {
		ret, _ := ast.ReturnType(t)
		return ret, nil
	}
	fn, _ := w.registry.Function(ref.Name)
	return fn.ReturnType, nil
}

// literalType classifies a literal value. Non-negative whole numbers are
// Natural, other numbers Scalar.
func literalType(v any) (ast.Type, bool) {
	switch v := v.(type) {
	case float64:
		if v >= 0 && v == math.Trunc(v) && !math.IsInf(v, 0) {
			return ast.Natural, true
		}
		return ast.Scalar, true
	case ast.Point:
		return ast.Vec2, true
	default:
		return 0, false
	}
}

// assignable reports whether a value of type have may appear where want
// is required. Naturals widen to Scalars.
func assignable(have, want ast.Type) bool {
	return have == want || (have == ast.Natural && want == ast.Scalar)
}

func functionMatches(fn *vm.FunctionDef, want ast.Type) bool {
	params, ok := ast.ParamTypes(want)
	if !ok {
		return false
	}
	ret, _ := ast.ReturnType(want)
	return ret == fn.ReturnType && slices.Equal(params, fn.Params)
}
