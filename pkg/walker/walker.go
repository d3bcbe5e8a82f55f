// Package walker provides a typed traversal of hyperlines program trees.
//
// Every expression is visited together with the semantic type it must
// produce and the type-scope in force at that point. Visitors may rewrite
// nodes; rewrites run bottom-up on already rebuilt subtrees, and the
// input tree is never modified.
package walker

import (
	"fmt"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/vm"
)

// TypeScope maps names to semantic types, chained like the runtime scope.
type TypeScope = vm.Scope[ast.Type]

// ExprFunc rewrites an expression required to produce want.
type ExprFunc func(e ast.Expression, want ast.Type, types *TypeScope) ast.Expression

// BlockFunc rewrites a block. types is the scope the block itself sees,
// not the one its children see.
type BlockFunc func(b *ast.Block, types *TypeScope) *ast.Block

// Visitor bundles optional rewrites. A nil func leaves nodes as rebuilt.
type Visitor struct {
	Expr  ExprFunc
	Block BlockFunc
}

// Walker traverses programs using the signatures in a registry.
type Walker struct {
	registry *vm.Registry
}

// New creates a Walker.
func New(registry *vm.Registry) *Walker {
	return &Walker{registry: registry}
}

// Walk returns a rebuilt copy of b with v applied to every node.
func (w *Walker) Walk(b *ast.Block, types *TypeScope, v Visitor) (*ast.Block, error) {
	def, ok := w.registry.Block(b.Name)
	if !ok {
		return nil, vm.NewUnknownBlockError(b.Name)
	}
	if len(b.Args) != len(def.Params) {
		return nil, vm.NewArityMismatchError("arguments of block", b.Name, len(def.Params), len(b.Args))
	}

	childTypes := types
	if def.HasBody() {
		if len(b.Bindings) != len(def.Bindings) {
			return nil, vm.NewArityMismatchError("bindings of block", b.Name, len(def.Bindings), len(b.Bindings))
		}
		bindings := make(map[string]ast.Type, len(b.Bindings))
		for i, name := range b.Bindings {
			bindings[name] = def.Bindings[i]
		}
		childTypes = types.Extend(bindings)
	}

	out := &ast.Block{
		Name:     b.Name,
		Args:     make([]ast.Expression, len(b.Args)),
		Bindings: make([]string, len(b.Bindings)),
		Children: make([]*ast.Block, len(b.Children)),
	}
	copy(out.Bindings, b.Bindings)

	for i, arg := range b.Args {
		e, err := w.WalkExpr(arg, def.Params[i], types, v)
		if err != nil {
			return nil, fmt.Errorf("block %s argument %d: %w", b.Name, i, err)
		}
		out.Args[i] = e
	}
	for i, child := range b.Children {
		c, err := w.Walk(child, childTypes, v)
		if err != nil {
			return nil, err
		}
		out.Children[i] = c
	}

	if v.Block != nil {
		return v.Block(out, types), nil
	}
	return out, nil
}

// WalkExpr returns a rebuilt copy of e, which must produce want.
func (w *Walker) WalkExpr(e ast.Expression, want ast.Type, types *TypeScope, v Visitor) (ast.Expression, error) {
	var out ast.Expression

	switch e := e.(type) {
	case *ast.Literal:
		out = &ast.Literal{Value: e.Value}

	case *ast.Variable:
		out = &ast.Variable{Name: e.Name}

	case *ast.Call:
		params, name, err := w.calleeParams(e.Callee, types)
		if err != nil {
			return nil, err
		}
		if len(e.Args) != len(params) {
			return nil, vm.NewArityMismatchError("arguments of function", name, len(params), len(e.Args))
		}
		args := make([]ast.Expression, len(e.Args))
		for i, arg := range e.Args {
			a, err := w.WalkExpr(arg, params[i], types, v)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		out = &ast.Call{Callee: ast.CloneExpr(e.Callee), Args: args}

	case *ast.Lambda:
		ret, ok := ast.ReturnType(want)
		if !ok {
			return nil, vm.NewTypeAssertionError(want)
		}
		params, ok := ast.ParamTypes(want)
		if !ok {
			return nil, vm.NewTypeAssertionError(want)
		}
		if len(e.Params) != len(params) {
			return nil, vm.NewArityMismatchError("parameters of lambda for", want.String(), len(params), len(e.Params))
		}
		bindings := make(map[string]ast.Type, len(params))
		for i, name := range e.Params {
			bindings[name] = params[i]
		}
		body, err := w.WalkExpr(e.Body, ret, types.Extend(bindings), v)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(e.Params))
		copy(names, e.Params)
		out = &ast.Lambda{Params: names, Body: body}

	default:
		panic(fmt.Sprintf("walker: unknown expression type %T", e))
	}

	if v.Expr != nil {
		return v.Expr(out, want, types), nil
	}
	return out, nil
}

// calleeParams resolves the parameter types of a call's callee. A name
// bound in the type-scope to a function type wins over a registered
// function of the same name.
func (w *Walker) calleeParams(callee ast.Expression, types *TypeScope) ([]ast.Type, string, error) {
	ref, ok := callee.(*ast.Variable)
	if !ok {
		return nil, fmt.Sprintf("%T", callee), vm.NewRuntimeError(vm.ErrorUnknownFunction,
			fmt.Sprintf("callee must be a name, got %T", callee))
	}
	if t, ok := types.Get(ref.Name); ok {
		params, isFn := ast.ParamTypes(t)
		if !isFn {
			return nil, ref.Name, vm.NewRuntimeError(vm.ErrorNotCallable,
				fmt.Sprintf("%s has type %s and is not callable", ref.Name, t))
		}
		return params, ref.Name, nil
	}
	if fn, ok := w.registry.Function(ref.Name); ok {
		return fn.Params, ref.Name, nil
	}
	return nil, ref.Name, vm.NewUnknownFunctionError(ref.Name)
}

// CountExprs counts the expression nodes of b accepted by pred, in walk
// order. A nil pred counts every expression.
func (w *Walker) CountExprs(b *ast.Block, types *TypeScope, pred func(e ast.Expression, want ast.Type, types *TypeScope) bool) (int, error) {
	n := 0
	_, err := w.Walk(b, types, Visitor{
		Expr: func(e ast.Expression, want ast.Type, types *TypeScope) ast.Expression {
			if pred == nil || pred(e, want, types) {
				n++
			}
			return e
		},
	})
	return n, err
}

// CountBlocks counts the blocks of b accepted by pred, in walk order. A
// nil pred counts every block.
func (w *Walker) CountBlocks(b *ast.Block, types *TypeScope, pred func(b *ast.Block, types *TypeScope) bool) (int, error) {
	n := 0
	_, err := w.Walk(b, types, Visitor{
		Block: func(b *ast.Block, types *TypeScope) *ast.Block {
			if pred == nil || pred(b, types) {
				n++
			}
			return b
		},
	})
	return n, err
}
