package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/compiler/lexer"
)

func parse(t *testing.T, input string) *ast.Block {
	t.Helper()
	program, errs := New(lexer.New(input)).ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parser errors for %q: %v", input, errs)
	}
	return program
}

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *ast.Block
	}{
		{
			name:  "leaf",
			input: "line([0, 0], [1, 1])",
			want:  ast.NewBlock("line", ast.Args(ast.Pt(0, 0), ast.Pt(1, 1)), nil),
		},
		{
			name:  "empty body",
			input: "grid(2, 3) {|g|}",
			want:  ast.NewBlock("grid", ast.Args(ast.Num(2), ast.Num(3)), ast.Names("g")),
		},
		{
			name:  "no bindings",
			input: "entry() {||}",
			want:  ast.NewBlock("entry", nil, nil),
		},
		{
			name: "nested with comments",
			input: `// entry point
_get_hyp() {|t|
  grid(2, 2) {|g| // corners
    polyline(g)
    each(g) {|p|
      line(p, Vec(0.5, -1))
    }
  }
}
`,
			want: ast.NewBlock("_get_hyp", nil, ast.Names("t"),
				ast.NewBlock("grid", ast.Args(ast.Num(2), ast.Num(2)), ast.Names("g"),
					ast.NewBlock("polyline", ast.Args(ast.Var("g")), nil),
					ast.NewBlock("each", ast.Args(ast.Var("g")), ast.Names("p"),
						ast.NewBlock("line", ast.Args(ast.Var("p"), ast.Vec(0.5, -1)), nil),
					),
				),
			),
		},
		{
			name:  "lambda",
			input: `particle(p, \p0 -> addVecs(p0, Vec(0, .1))) {|p0, p1|}`,
			want: ast.NewBlock("particle", ast.Args(
				ast.Var("p"),
				ast.Fn([]string{"p0"}, ast.CallFn("addVecs", ast.Var("p0"), ast.Vec(0, 0.1))),
			), ast.Names("p0", "p1")),
		},
		{
			name:  "lambda without params and with two",
			input: `f(\ -> 1, \a, b -> a)`,
			want: ast.NewBlock("f", ast.Args(
				ast.Fn(nil, ast.Num(1)),
				ast.Fn([]string{"a", "b"}, ast.Var("a")),
			), nil),
		},
		{
			name:  "curried call",
			input: "f(g(1)(2), h())",
			want: ast.NewBlock("f", ast.Args(
				&ast.Call{Callee: ast.CallFn("g", ast.Num(1)), Args: ast.Args(ast.Num(2))},
				ast.CallFn("h"),
			), nil),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(t, tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseProgram(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseProgram_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		column  int
		message string
	}{
		{"empty input", "", 1, 1, "expected block name"},
		{"missing paren", "line [0, 0]", 1, 6, "expected ("},
		{"missing comma", "line([0, 0] [1, 1])", 1, 13, "expected )"},
		{"point needs numbers", "line([a, 0], p)", 1, 7, "expected NUMBER"},
		{"missing bindings", "grid(1, 1) { line(p, q) }", 1, 14, "expected |"},
		{"unterminated body", "grid(1, 1) {|g|\n  line(p, q)\n", 3, 1, "unterminated body"},
		{"trailing block", "a()\nb()", 2, 1, "expected end of input"},
		{"lambda needs arrow", `f(\x y)`, 1, 6, "expected ->"},
		{"dangling comma", "f(1, )", 1, 6, "expected expression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, errs := New(lexer.New(tt.input)).ParseProgram()
			if program != nil {
				t.Fatalf("expected no program, got %#v", program)
			}
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			var pe *ParserError
			if !errors.As(errs[0], &pe) {
				t.Fatalf("expected *ParserError, got %T", errs[0])
			}
			if pe.Line != tt.line || pe.Column != tt.column {
				t.Errorf("error at %d:%d, want %d:%d (%s)", pe.Line, pe.Column, tt.line, tt.column, pe.Message)
			}
			if !strings.Contains(pe.Message, tt.message) {
				t.Errorf("message %q does not contain %q", pe.Message, tt.message)
			}
		})
	}
}
