// Package vm provides the built-in blocks of the hyperlines language.
package vm

import (
	"fmt"
	"math"

	"github.com/josephg/hyperlines/pkg/ast"
)

// EntryBlock is the conventional name of a program's root block.
const EntryBlock = "_get_hyp"

func builtinBlocks() []*BlockDef {
	return []*BlockDef{
		{
			Name:     EntryBlock,
			Params:   []ast.Type{},
			Bindings: []ast.Type{ast.Natural},
			Run:      blockEntry,
		},
		{
			Name:     "entry",
			Params:   []ast.Type{},
			Bindings: []ast.Type{ast.Natural},
			Run:      blockEntry,
		},
		{
			Name:   "line",
			Params: []ast.Type{ast.Vec2, ast.Vec2},
			Run:    blockLine,
		},
		{
			Name:   "polyline",
			Params: []ast.Type{ast.Vec2Array},
			Run:    blockPolyline,
		},
		{
			Name:     "grid",
			Params:   []ast.Type{ast.Natural, ast.Natural},
			Bindings: []ast.Type{ast.Vec2Array},
			Run:      blockGrid,
		},
		{
			Name:     "ring",
			Params:   []ast.Type{ast.Natural, ast.Scalar},
			Bindings: []ast.Type{ast.Vec2Array},
			Run:      blockRing,
		},
		{
			Name:     "each",
			Params:   []ast.Type{ast.Vec2Array},
			Bindings: []ast.Type{ast.Vec2},
			Run:      blockEach,
		},
		{
			Name:     "repeat",
			Params:   []ast.Type{ast.Natural},
			Bindings: []ast.Type{ast.Natural},
			Run:      blockRepeat,
		},
		{
			Name:     "particle",
			Params:   []ast.Type{ast.Vec2, ast.VecToVec},
			Bindings: []ast.Type{ast.Vec2, ast.Vec2},
			Run:      blockParticle,
		},
	}
}

// bindChildren enqueues b's children in a scope binding b's names to
// values positionally.
func bindChildren(ctx *Context, scope *Scope[any], b *ast.Block, values ...any) {
	bindings := make(map[string]any, len(values))
	for i, v := range values {
		if i < len(b.Bindings) {
			bindings[b.Bindings[i]] = v
		}
	}
	ctx.EnqueueAll(scope.Extend(bindings), b.Children)
}

// blockEntry binds the step counter and runs the body once.
func blockEntry(ctx *Context, args []any, scope *Scope[any], b *ast.Block) error {
	bindChildren(ctx, scope, b, float64(0))
	return nil
}

func blockLine(ctx *Context, args []any, scope *Scope[any], b *ast.Block) error {
	if err := checkArity("line", args, 2); err != nil {
		return err
	}
	from, err := pointArg("line", args, 0)
	if err != nil {
		return err
	}
	to, err := pointArg("line", args, 1)
	if err != nil {
		return err
	}
	ctx.Emit(from, to)
	return nil
}

func blockPolyline(ctx *Context, args []any, scope *Scope[any], b *ast.Block) error {
	if err := checkArity("polyline", args, 1); err != nil {
		return err
	}
	pts, err := pointsArg("polyline", args, 0)
	if err != nil {
		return err
	}
	for i := 1; i < len(pts); i++ {
		ctx.Emit(pts[i-1], pts[i])
	}
	return nil
}

// GridPoints returns an nx by ny lattice normalised to the unit square,
// row by row. An axis with a single point sits at 0.
func GridPoints(nx, ny int) []ast.Point {
	points := make([]ast.Point, 0, nx*ny)
	dx := float64(max(nx-1, 1))
	dy := float64(max(ny-1, 1))
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			points = append(points, ast.Point{X: float64(x) / dx, Y: float64(y) / dy})
		}
	}
	return points
}

func blockGrid(ctx *Context, args []any, scope *Scope[any], b *ast.Block) error {
	if err := checkArity("grid", args, 2); err != nil {
		return err
	}
	nx, err := naturalArg("grid", args, 0)
	if err != nil {
		return err
	}
	ny, err := naturalArg("grid", args, 1)
	if err != nil {
		return err
	}
	if err := ctx.checkFanout("grid", 0, nx); err != nil {
		return err
	}
	// nx*ny may overflow, so compare by division
	if ny > 0 && nx > ctx.maxFanout/ny {
		return NewInvalidArgumentError("grid", 1, fmt.Sprintf("at most %d points in total", ctx.maxFanout), ny)
	}
	bindChildren(ctx, scope, b, GridPoints(nx, ny))
	return nil
}

// RingPoints returns n points evenly spaced on a circle of radius r
// centred on (0.5, 0.5), starting at angle 0.
func RingPoints(n int, r float64) []ast.Point {
	points := make([]ast.Point, n)
	for i := range points {
		theta := 2 * math.Pi * float64(i) / float64(n)
		sin, cos := math.Sincos(theta)
		points[i] = ast.Point{X: 0.5 + r*cos, Y: 0.5 + r*sin}
	}
	return points
}

func blockRing(ctx *Context, args []any, scope *Scope[any], b *ast.Block) error {
	if err := checkArity("ring", args, 2); err != nil {
		return err
	}
	n, err := naturalArg("ring", args, 0)
	if err != nil {
		return err
	}
	r, err := scalarArg("ring", args, 1)
	if err != nil {
		return err
	}
	if err := ctx.checkFanout("ring", 0, n); err != nil {
		return err
	}
	bindChildren(ctx, scope, b, RingPoints(n, r))
	return nil
}

func blockEach(ctx *Context, args []any, scope *Scope[any], b *ast.Block) error {
	if err := checkArity("each", args, 1); err != nil {
		return err
	}
	pts, err := pointsArg("each", args, 0)
	if err != nil {
		return err
	}
	for _, p := range pts {
		bindChildren(ctx, scope, b, p)
	}
	return nil
}

func blockRepeat(ctx *Context, args []any, scope *Scope[any], b *ast.Block) error {
	if err := checkArity("repeat", args, 1); err != nil {
		return err
	}
	n, err := naturalArg("repeat", args, 0)
	if err != nil {
		return err
	}
	if err := ctx.checkFanout("repeat", 0, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		bindChildren(ctx, scope, b, float64(i))
	}
	return nil
}

// blockParticle advances one step: it runs the body with (cur, next)
// bound and then schedules a copy of itself starting from next. The
// chain never ends on its own; the scheduler's step limit stops it.
func blockParticle(ctx *Context, args []any, scope *Scope[any], b *ast.Block) error {
	if err := checkArity("particle", args, 2); err != nil {
		return err
	}
	pos, err := pointArg("particle", args, 0)
	if err != nil {
		return err
	}
	update, err := callableArg("particle", args, 1)
	if err != nil {
		return err
	}
	out, err := update.Call([]any{pos})
	if err != nil {
		return err
	}
	next, ok := toPoint(out)
	if !ok {
		return NewInvalidArgumentError("particle update result", 0, "a point", out)
	}

	bindChildren(ctx, scope, b, pos, next)

	nextArgs := make([]ast.Expression, len(b.Args))
	copy(nextArgs, b.Args)
	nextArgs[0] = &ast.Literal{Value: next}
	ctx.Enqueue(scope, &ast.Block{
		Name:     b.Name,
		Args:     nextArgs,
		Bindings: b.Bindings,
		Children: b.Children,
	})
	return nil
}
