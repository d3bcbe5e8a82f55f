// Package printer renders hyperlines programs back to source text.
//
// The output is accepted by the compiler package, and parsing it yields a
// tree equal to the one printed.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/vm"
)

const indentUnit = "  "

// Block renders b and its children. The registry decides which blocks
// take a body; unknown blocks are printed with one when they have
// bindings or children.
func Block(registry *vm.Registry, b *ast.Block) string {
	var sb strings.Builder
	writeBlock(&sb, registry, b, "")
	return sb.String()
}

func writeBlock(sb *strings.Builder, registry *vm.Registry, b *ast.Block, indent string) {
	sb.WriteString(indent)
	sb.WriteString(b.Name)
	sb.WriteByte('(')
	writeList(sb, b.Args)
	sb.WriteByte(')')

	if !hasBody(registry, b) {
		sb.WriteByte('\n')
		return
	}

	sb.WriteString(" {|")
	sb.WriteString(strings.Join(b.Bindings, ", "))
	sb.WriteString("|\n")
	for _, child := range b.Children {
		writeBlock(sb, registry, child, indent+indentUnit)
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

func hasBody(registry *vm.Registry, b *ast.Block) bool {
	if registry != nil {
		if def, ok := registry.Block(b.Name); ok {
			return def.HasBody()
		}
	}
	return len(b.Bindings) > 0 || len(b.Children) > 0
}

// Expr renders a single expression.
func Expr(e ast.Expression) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e ast.Expression) {
	switch e := e.(type) {
	case *ast.Literal:
		sb.WriteString(literal(e.Value))
	case *ast.Variable:
		sb.WriteString(e.Name)
	case *ast.Call:
		writeExpr(sb, e.Callee)
		sb.WriteByte('(')
		writeList(sb, e.Args)
		sb.WriteByte(')')
	case *ast.Lambda:
		sb.WriteByte('\\')
		sb.WriteString(strings.Join(e.Params, ", "))
		sb.WriteString(" -> ")
		writeExpr(sb, e.Body)
	default:
		panic(fmt.Sprintf("printer: unknown expression type %T", e))
	}
}

func writeList(sb *strings.Builder, es []ast.Expression) {
	for i, e := range es {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, e)
	}
}

func literal(v any) string {
	switch v := v.(type) {
	case float64:
		return number(v)
	case ast.Point:
		return "[" + number(v.X) + ", " + number(v.Y) + "]"
	default:
		return fmt.Sprint(v)
	}
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
