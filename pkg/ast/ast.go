package ast

// Point is a 2D point in program space.
type Point struct {
	X float64
	Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Segment is one emitted line.
type Segment struct {
	From Point
	To   Point
}

// Expression is one of *Literal, *Variable, *Call or *Lambda.
type Expression interface {
	expressionNode()
}

// Literal carries a float64 or a Point.
type Literal struct {
	Value any
}

// Variable is resolved through a scope at evaluation or walk time.
type Variable struct {
	Name string
}

// Call applies Callee to Args. Callee is usually a *Variable naming a
// registered function.
type Call struct {
	Callee Expression
	Args   []Expression
}

// Lambda evaluates to a closure over the defining scope.
type Lambda struct {
	Params []string
	Body   Expression
}

func (*Literal) expressionNode()  {}
func (*Variable) expressionNode() {}
func (*Call) expressionNode()     {}
func (*Lambda) expressionNode()   {}

// Block is a node of the program tree. Name must match a registered
// block definition. Bindings are the names introduced for Children.
type Block struct {
	Name     string
	Args     []Expression
	Bindings []string
	Children []*Block
}

// Clone returns a deep copy of b.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	out := &Block{
		Name:     b.Name,
		Args:     make([]Expression, len(b.Args)),
		Bindings: make([]string, len(b.Bindings)),
		Children: make([]*Block, len(b.Children)),
	}
	copy(out.Bindings, b.Bindings)
	for i, a := range b.Args {
		out.Args[i] = CloneExpr(a)
	}
	for i, c := range b.Children {
		out.Children[i] = c.Clone()
	}
	return out
}

// CloneExpr returns a deep copy of e.
func CloneExpr(e Expression) Expression {
	switch e := e.(type) {
	case nil:
		return nil
	case *Literal:
		return &Literal{Value: e.Value}
	case *Variable:
		return &Variable{Name: e.Name}
	case *Call:
		args := make([]Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = CloneExpr(a)
		}
		return &Call{Callee: CloneExpr(e.Callee), Args: args}
	case *Lambda:
		params := make([]string, len(e.Params))
		copy(params, e.Params)
		return &Lambda{Params: params, Body: CloneExpr(e.Body)}
	default:
		panic("ast: unknown expression type")
	}
}
