// Package vm provides the execution engine for hyperlines programs.
// It implements a queue-driven execution model with support for:
// - Expression evaluation against chained scopes
// - A registry of native functions and blocks
// - FIFO block scheduling with self-re-enqueuing blocks
// - A step limit that bounds runaway programs
package vm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/logger"
)

// DefaultMaxSteps is the dequeue limit used when none is configured.
const DefaultMaxSteps = 100

// DefaultMaxFanout bounds the points a grid or ring may produce and the
// iterations of a repeat.
const DefaultMaxFanout = 1 << 16

// VM runs programs against a registry.
type VM struct {
	registry  *Registry
	maxSteps  int
	maxFanout int
	log       *slog.Logger
}

// Result is the outcome of a run.
type Result struct {
	// Lines are the emitted segments in emission order.
	Lines []ast.Segment

	// Steps is the number of block invocations dequeued.
	Steps int

	// Truncated is set when the step limit stopped the run with work
	// still queued.
	Truncated bool
}

// Option is a functional option for configuring the VM.
type Option func(*VM)

// WithMaxSteps sets the dequeue limit. Values <= 0 select
// DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(vm *VM) {
		if n <= 0 {
			n = DefaultMaxSteps
		}
		vm.maxSteps = n
	}
}

// WithMaxFanout sets the largest point count or repeat count a single
// block may produce. Values <= 0 select DefaultMaxFanout.
func WithMaxFanout(n int) Option {
	return func(vm *VM) {
		if n <= 0 {
			n = DefaultMaxFanout
		}
		vm.maxFanout = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(vm *VM) {
		vm.log = log
	}
}

// New creates a VM. A nil registry selects DefaultRegistry.
func New(registry *Registry, opts ...Option) *VM {
	if registry == nil {
		registry = DefaultRegistry()
	}
	vm := &VM{
		registry: registry,
		maxSteps:  DefaultMaxSteps,
		maxFanout: DefaultMaxFanout,
		log:       logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Registry returns the registry the VM runs against.
func (vm *VM) Registry() *Registry {
	return vm.registry
}

// MaxFanout returns the per-block fanout limit.
func (vm *VM) MaxFanout() int {
	return vm.maxFanout
}

// MaxSteps returns the configured dequeue limit.
func (vm *VM) MaxSteps() int {
	return vm.maxSteps
}

// Run executes program and returns the emitted segments.
func (vm *VM) Run(program *ast.Block) (*Result, error) {
	return vm.RunContext(context.Background(), program)
}

// RunContext executes program, checking ctx between dequeues.
//
// The program is queued against the global function scope and the queue
// is drained strictly FIFO. Each dequeue evaluates the block's arguments
// in its captured scope and invokes the block's behavior. Reaching the
// step limit is not an error: the partial log is returned with
// Truncated set.
func (vm *VM) RunContext(ctx context.Context, program *ast.Block) (*Result, error) {
	ec := newContext()
	ec.maxFanout = vm.maxFanout
	ec.Enqueue(vm.registry.Globals(), program)

	steps := 0
	for ec.Pending() > 0 {
		if steps >= vm.maxSteps {
			vm.log.Warn("Step limit reached, output truncated",
				"max_steps", vm.maxSteps, "pending", ec.Pending(), "segments", len(ec.lines))
			return &Result{Lines: ec.lines, Steps: steps, Truncated: true}, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		w, _ := ec.dequeue()
		steps++
		if err := vm.step(ec, w); err != nil {
			return nil, err
		}
	}

	vm.log.Info("Run finished", "segments", len(ec.lines), "steps", steps)
	return &Result{Lines: ec.lines, Steps: steps}, nil
}

func (vm *VM) step(ec *Context, w work) error {
	def, ok := vm.registry.Block(w.block.Name)
	if !ok {
		return NewUnknownBlockError(w.block.Name)
	}
	vm.log.Debug("Running block", "name", w.block.Name, "pending", ec.Pending())

	args, err := evaluateAll(w.scope, w.block.Args)
	if err != nil {
		return fmt.Errorf("block %s: %w", w.block.Name, err)
	}
	if err := def.Run(ec, args, w.scope, w.block); err != nil {
		return fmt.Errorf("block %s: %w", w.block.Name, err)
	}
	return nil
}
