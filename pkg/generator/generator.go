// Package generator mutates hyperlines programs.
//
// A Generator picks one eligible node of a program at random, either an
// expression or a block, and rewrites it with a pluggable rule. The input
// program is never modified; every call returns a new tree.
package generator

import (
	"log/slog"
	"math/rand/v2"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/logger"
	"github.com/josephg/hyperlines/pkg/vm"
	"github.com/josephg/hyperlines/pkg/walker"
)

// ExprRule produces a replacement for e, an expression that must produce
// the type the rule is registered for.
type ExprRule func(rng *rand.Rand, e ast.Expression, types *walker.TypeScope) ast.Expression

// BlockRule rewrites b. b is a fresh copy and may be modified in place.
type BlockRule func(rng *rand.Rand, b *ast.Block, types *walker.TypeScope) *ast.Block

// Generator applies random mutations to programs.
type Generator struct {
	registry     *vm.Registry
	walker       *walker.Walker
	rng          *rand.Rand
	exprRules    map[ast.Type]ExprRule
	blockRules   map[string]BlockRule
	defaultBlock BlockRule
	log          *slog.Logger
}

// Option is a functional option for configuring the Generator.
type Option func(*Generator)

// WithExprRule sets the rule for expressions that must produce t. A nil
// rule makes such expressions ineligible.
func WithExprRule(t ast.Type, rule ExprRule) Option {
	return func(g *Generator) {
		if rule == nil {
			delete(g.exprRules, t)
			return
		}
		g.exprRules[t] = rule
	}
}

// WithBlockRule sets the rule for blocks named name. It takes precedence
// over the default block rule. A nil rule removes it.
func WithBlockRule(name string, rule BlockRule) Option {
	return func(g *Generator) {
		if rule == nil {
			delete(g.blockRules, name)
			return
		}
		g.blockRules[name] = rule
	}
}

// WithDefaultBlockRule sets the rule applied to body blocks that have no
// named rule. nil disables it.
func WithDefaultBlockRule(rule BlockRule) Option {
	return func(g *Generator) {
		g.defaultBlock = rule
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// New creates a Generator drawing randomness from rng. A nil registry
// selects vm.DefaultRegistry and a nil rng a randomly seeded source.
func New(registry *vm.Registry, rng *rand.Rand, opts ...Option) *Generator {
	if registry == nil {
		registry = vm.DefaultRegistry()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g := &Generator{
		registry: registry,
		walker:   walker.New(registry),
		rng:      rng,
		exprRules: map[ast.Type]ExprRule{
			ast.Scalar:  ScalarRule,
			ast.Natural: NaturalRule,
			ast.Vec2:    Vec2Rule,
		},
		blockRules:   map[string]BlockRule{},
		defaultBlock: AppendLineRule,
		log:          logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Transform returns a copy of p with one node mutated. The strategy,
// expression or block, is chosen uniformly; when it has no eligible
// nodes the other one is used, and when neither has any an unchanged
// copy is returned.
func (g *Generator) Transform(p *ast.Block) (*ast.Block, error) {
	exprs, err := g.walker.CountExprs(p, nil, g.exprEligible)
	if err != nil {
		return nil, err
	}
	blocks, err := g.walker.CountBlocks(p, nil, g.blockEligible)
	if err != nil {
		return nil, err
	}

	if exprs == 0 && blocks == 0 {
		g.log.Debug("No eligible nodes, program unchanged")
		return p.Clone(), nil
	}

	useExpr := g.rng.IntN(2) == 0
	if exprs == 0 {
		useExpr = false
	} else if blocks == 0 {
		useExpr = true
	}

	if useExpr {
		return g.mutateExpr(p, g.rng.IntN(exprs))
	}
	return g.mutateBlock(p, g.rng.IntN(blocks))
}

// TransformN applies n successive mutations to p.
func (g *Generator) TransformN(p *ast.Block, n int) (*ast.Block, error) {
	out := p.Clone()
	for i := 0; i < n; i++ {
		next, err := g.Transform(out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

func (g *Generator) exprEligible(e ast.Expression, want ast.Type, types *walker.TypeScope) bool {
	_, ok := g.exprRules[want]
	return ok
}

func (g *Generator) blockEligible(b *ast.Block, types *walker.TypeScope) bool {
	return g.blockRule(b) != nil
}

func (g *Generator) blockRule(b *ast.Block) BlockRule {
	if rule, ok := g.blockRules[b.Name]; ok {
		return rule
	}
	if g.defaultBlock == nil {
		return nil
	}
	if def, ok := g.registry.Block(b.Name); ok && def.HasBody() {
		return g.defaultBlock
	}
	return nil
}

// mutateExpr replaces the target-th eligible expression in walk order.
func (g *Generator) mutateExpr(p *ast.Block, target int) (*ast.Block, error) {
	n := target
	return g.walker.Walk(p, nil, walker.Visitor{
		Expr: func(e ast.Expression, want ast.Type, types *walker.TypeScope) ast.Expression {
			rule, ok := g.exprRules[want]
			if !ok {
				return e
			}
			hit := n == 0
			n--
			if !hit {
				return e
			}
			g.log.Debug("Mutating expression", "index", target, "type", want.String())
			return rule(g.rng, e, types)
		},
	})
}

// mutateBlock rewrites the target-th eligible block in walk order.
func (g *Generator) mutateBlock(p *ast.Block, target int) (*ast.Block, error) {
	n := target
	return g.walker.Walk(p, nil, walker.Visitor{
		Block: func(b *ast.Block, types *walker.TypeScope) *ast.Block {
			rule := g.blockRule(b)
			if rule == nil {
				return b
			}
			hit := n == 0
			n--
			if !hit {
				return b
			}
			g.log.Debug("Mutating block", "index", target, "block", b.Name)
			return rule(g.rng, b, types)
		},
	})
}
