package walker

import (
	"testing"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/vm"
)

func entry(children ...*ast.Block) *ast.Block {
	return ast.NewBlock(vm.EntryBlock, nil, ast.Names("t"), children...)
}

func TestCheck_AcceptsWellTypedPrograms(t *testing.T) {
	reg := vm.DefaultRegistry()
	programs := map[string]*ast.Block{
		"particles": particleProgram(),
		"closure variable": entry(
			ast.NewBlock("ring", ast.Args(ast.Num(6), ast.Num(0.25)), ast.Names("r"),
				ast.NewBlock("each", ast.Args(ast.Var("r")), ast.Names("p"),
					ast.NewBlock("particle", ast.Args(
						ast.Var("p"),
						ast.Fn([]string{"q"}, ast.CallFn("rotateVec", ast.Var("q"), ast.Num(0.1))),
					), ast.Names("a", "b"),
						ast.NewBlock("line", ast.Args(ast.Var("a"), ast.Var("b")), nil)),
				),
			),
		),
		"natural widens to scalar": entry(
			ast.NewBlock("line", ast.Args(ast.Vec(1, 2), ast.CallFn("scaleVec", ast.Pt(1, 1), ast.Var("t"))), nil),
		),
		"polyline over grid": entry(
			ast.NewBlock("grid", ast.Args(ast.Num(3), ast.Num(1)), ast.Names("g"),
				ast.NewBlock("polyline", ast.Args(ast.Var("g")), nil)),
		),
	}
	for name, p := range programs {
		t.Run(name, func(t *testing.T) {
			if err := Check(reg, p); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheck_Rejects(t *testing.T) {
	reg := vm.DefaultRegistry()
	tests := []struct {
		name    string
		program *ast.Block
		want    vm.ErrorType
	}{
		{
			name:    "missing binding",
			program: ast.NewBlock(vm.EntryBlock, nil, nil),
			want:    vm.ErrorArityMismatch,
		},
		{
			name: "extra binding",
			program: entry(ast.NewBlock("grid", ast.Args(ast.Num(1), ast.Num(1)), ast.Names("g", "h"))),
			want:    vm.ErrorArityMismatch,
		},
		{
			name: "children on a leaf",
			program: entry(ast.NewBlock("line", ast.Args(ast.Pt(0, 0), ast.Pt(1, 1)), nil,
				ast.NewBlock("line", ast.Args(ast.Pt(0, 0), ast.Pt(1, 1)), nil))),
			want: vm.ErrorArityMismatch,
		},
		{
			name:    "fractional natural",
			program: entry(ast.NewBlock("grid", ast.Args(ast.Num(1.5), ast.Num(1)), ast.Names("g"))),
			want:    vm.ErrorTypeMismatch,
		},
		{
			name:    "number where a point is required",
			program: entry(ast.NewBlock("line", ast.Args(ast.Num(1), ast.Pt(1, 1)), nil)),
			want:    vm.ErrorTypeMismatch,
		},
		{
			name:    "variable of the wrong type",
			program: entry(ast.NewBlock("line", ast.Args(ast.Var("t"), ast.Pt(1, 1)), nil)),
			want:    vm.ErrorTypeMismatch,
		},
		{
			name:    "unbound variable",
			program: entry(ast.NewBlock("line", ast.Args(ast.Var("q"), ast.Pt(1, 1)), nil)),
			want:    vm.ErrorUnboundName,
		},
		{
			name:    "call result of the wrong type",
			program: entry(ast.NewBlock("grid", ast.Args(ast.Vec(1, 1), ast.Num(1)), ast.Names("g"))),
			want:    vm.ErrorTypeMismatch,
		},
		{
			name: "calling a non-function binding",
			program: entry(ast.NewBlock("line", ast.Args(ast.CallFn("t", ast.Num(1)), ast.Pt(1, 1)), nil)),
			want:    vm.ErrorNotCallable,
		},
		{
			name:    "lambda in a point position",
			program: entry(ast.NewBlock("line", ast.Args(ast.Fn([]string{"x"}, ast.Var("x")), ast.Pt(1, 1)), nil)),
			want:    vm.ErrorTypeAssertion,
		},
		{
			name: "function of the wrong shape as a value",
			program: entry(ast.NewBlock("particle", ast.Args(ast.Pt(0, 0), ast.Var("addVecs")), ast.Names("a", "b"))),
			want:    vm.ErrorTypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(reg, tt.program)
			if !vm.IsErrorType(err, tt.want) {
				t.Errorf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLiteralType(t *testing.T) {
	tests := []struct {
		value any
		want  ast.Type
	}{
		{0.0, ast.Natural},
		{3.0, ast.Natural},
		{-1.0, ast.Scalar},
		{0.5, ast.Scalar},
		{ast.Point{X: 1}, ast.Vec2},
	}
	for _, tt := range tests {
		got, ok := literalType(tt.value)
		if !ok || got != tt.want {
			t.Errorf("literalType(%v) = %v, %v; want %v", tt.value, got, ok, tt.want)
		}
	}
	if _, ok := literalType("text"); ok {
		t.Error("strings are not literals")
	}
}
