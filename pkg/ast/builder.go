package ast

// Num returns a numeric literal.
func Num(v float64) *Literal {
	return &Literal{Value: v}
}

// Pt returns a point literal.
func Pt(x, y float64) *Literal {
	return &Literal{Value: Point{X: x, Y: y}}
}

// Var returns a variable reference.
func Var(name string) *Variable {
	return &Variable{Name: name}
}

// CallFn returns a call of the named function.
func CallFn(name string, args ...Expression) *Call {
	if args == nil {
		args = []Expression{}
	}
	return &Call{Callee: Var(name), Args: args}
}

// Vec returns Vec(x, y) as a call, the way programs spell vector
// constants.
func Vec(x, y float64) *Call {
	return CallFn("Vec", Num(x), Num(y))
}

// Fn returns a lambda.
func Fn(params []string, body Expression) *Lambda {
	if params == nil {
		params = []string{}
	}
	return &Lambda{Params: params, Body: body}
}

// NewBlock returns a block. Nil slices are normalised to empty ones so
// built and parsed trees compare equal.
func NewBlock(name string, args []Expression, bindings []string, children ...*Block) *Block {
	if args == nil {
		args = []Expression{}
	}
	if bindings == nil {
		bindings = []string{}
	}
	if children == nil {
		children = []*Block{}
	}
	return &Block{Name: name, Args: args, Bindings: bindings, Children: children}
}

// Args is shorthand for an argument list.
func Args(args ...Expression) []Expression {
	return args
}

// Names is shorthand for a binding list.
func Names(names ...string) []string {
	return names
}
