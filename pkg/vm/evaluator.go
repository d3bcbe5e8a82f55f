// Package vm provides expression evaluation for the hyperlines engine.
package vm

import (
	"fmt"

	"github.com/josephg/hyperlines/pkg/ast"
)

// Closure is the runtime value of a Lambda.
type Closure struct {
	Params []string
	Body   ast.Expression
	scope  *Scope[any]
}

// Call binds params positionally in one new child of the defining scope
// and evaluates the body there.
func (c *Closure) Call(args []any) (any, error) {
	if len(args) != len(c.Params) {
		return nil, NewArityMismatchError("lambda", fmt.Sprintf("\\%d", len(c.Params)), len(c.Params), len(args))
	}
	bindings := make(map[string]any, len(args))
	for i, name := range c.Params {
		bindings[name] = args[i]
	}
	return Evaluate(c.scope.Extend(bindings), c.Body)
}

// Evaluate reduces expr to a value in scope.
//
// A variable whose value is missing or nil fails with ErrorUnboundName.
// A call whose callee is not Callable fails with ErrorNotCallable.
// Arguments are evaluated left to right.
func Evaluate(scope *Scope[any], expr ast.Expression) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Variable:
		value, ok := scope.Get(e.Name)
		if !ok || value == nil {
			return nil, NewUnboundNameError(e.Name)
		}
		return value, nil

	case *ast.Call:
		callee, err := Evaluate(scope, e.Callee)
		if err != nil {
			return nil, err
		}
		fn, ok := callee.(Callable)
		if !ok {
			return nil, NewNotCallableError(callee)
		}
		args, err := evaluateAll(scope, e.Args)
		if err != nil {
			return nil, err
		}
		return fn.Call(args)

	case *ast.Lambda:
		return &Closure{Params: e.Params, Body: e.Body, scope: scope}, nil

	default:
		panic(fmt.Sprintf("vm: unknown expression type %T", expr))
	}
}

func evaluateAll(scope *Scope[any], exprs []ast.Expression) ([]any, error) {
	values := make([]any, len(exprs))
	for i, e := range exprs {
		v, err := Evaluate(scope, e)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
