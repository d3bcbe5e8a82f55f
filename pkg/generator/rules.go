package generator

import (
	"math/rand/v2"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/walker"
)

// ScalarRule replaces any scalar expression with 0.5.
func ScalarRule(rng *rand.Rand, e ast.Expression, types *walker.TypeScope) ast.Expression {
	return ast.Num(0.5)
}

// NaturalRule replaces a natural expression with a literal in [1, 6].
func NaturalRule(rng *rand.Rand, e ast.Expression, types *walker.TypeScope) ast.Expression {
	return ast.Num(float64(1 + rng.IntN(6)))
}

// Vec2Rule replaces a point expression with a Vec2 variable in scope, or
// with a call to Vec on random coordinates when there is none.
func Vec2Rule(rng *rand.Rand, e ast.Expression, types *walker.TypeScope) ast.Expression {
	var names []string
	for _, name := range types.AllKeys() {
		if t, _ := types.Get(name); t == ast.Vec2 {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return ast.Var(names[rng.IntN(len(names))])
	}
	return ast.Vec(rng.Float64(), rng.Float64())
}

// AppendLineRule adds line([0, 0], [1, 1]) to the end of b's body.
func AppendLineRule(rng *rand.Rand, b *ast.Block, types *walker.TypeScope) *ast.Block {
	b.Children = append(b.Children, ast.NewBlock("line", ast.Args(ast.Pt(0, 0), ast.Pt(1, 1)), nil))
	return b
}
