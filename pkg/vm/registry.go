package vm

import (
	"sort"

	"github.com/josephg/hyperlines/pkg/ast"
)

// Callable is a runtime value that can appear as the callee of a Call.
type Callable interface {
	Call(args []any) (any, error)
}

// NativeFunc is the native implementation of a registered function.
type NativeFunc func(args []any) (any, error)

// FunctionDef is an immutable registry entry for a function.
type FunctionDef struct {
	Name       string
	Params     []ast.Type
	ReturnType ast.Type
	Fn         NativeFunc
}

// Call invokes the native implementation.
func (f *FunctionDef) Call(args []any) (any, error) {
	if len(args) != len(f.Params) {
		return nil, NewArityMismatchError("function", f.Name, len(f.Params), len(args))
	}
	return f.Fn(args)
}

// BlockFunc is the native behavior of a block. args are already
// evaluated in scope.
type BlockFunc func(ctx *Context, args []any, scope *Scope[any], b *ast.Block) error

// BlockDef is an immutable registry entry for a block.
//
// A nil Bindings slice marks a leaf action: such blocks introduce no
// names and must have no children. A non-nil slice, even an empty one,
// marks a block with a body.
type BlockDef struct {
	Name     string
	Params   []ast.Type
	Bindings []ast.Type
	Run      BlockFunc
}

// HasBody reports whether the block introduces a child scope.
func (d *BlockDef) HasBody() bool {
	return d.Bindings != nil
}

// Registry holds the function and block tables. It is built once and
// never modified, so it is safe to share.
type Registry struct {
	functions map[string]*FunctionDef
	blocks    map[string]*BlockDef
	globals   *Scope[any]
}

// NewRegistry builds a registry. Later entries replace earlier ones with
// the same name.
func NewRegistry(functions []*FunctionDef, blocks []*BlockDef) *Registry {
	r := &Registry{
		functions: make(map[string]*FunctionDef, len(functions)),
		blocks:    make(map[string]*BlockDef, len(blocks)),
	}
	globals := make(map[string]any, len(functions))
	for _, f := range functions {
		r.functions[f.Name] = f
		globals[f.Name] = f
	}
	for _, b := range blocks {
		r.blocks[b.Name] = b
	}
	r.globals = NewScope[any](nil, globals)
	return r
}

// DefaultRegistry returns a registry with the built-in functions and
// blocks.
func DefaultRegistry() *Registry {
	return NewRegistry(builtinFunctions(), builtinBlocks())
}

// Function looks up a function definition.
func (r *Registry) Function(name string) (*FunctionDef, bool) {
	f, ok := r.functions[name]
	return f, ok
}

// Block looks up a block definition.
func (r *Registry) Block(name string) (*BlockDef, bool) {
	b, ok := r.blocks[name]
	return b, ok
}

// Globals returns the root runtime scope, binding every function name to
// its definition.
func (r *Registry) Globals() *Scope[any] {
	return r.globals
}

// FunctionNames returns the registered function names, sorted.
func (r *Registry) FunctionNames() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BlockNames returns the registered block names, sorted.
func (r *Registry) BlockNames() []string {
	names := make([]string, 0, len(r.blocks))
	for name := range r.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
