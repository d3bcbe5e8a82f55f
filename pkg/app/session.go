package app

import (
	"fmt"
	"log/slog"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/generator"
	"github.com/josephg/hyperlines/pkg/vm"
)

// Session holds the program being explored: the original, the current
// mutation of it, and the result of running the current one.
type Session struct {
	name       string
	original   *ast.Block
	current    *ast.Block
	result     *vm.Result
	generation int

	machine   *vm.VM
	generator *generator.Generator
	log       *slog.Logger
}

// NewSession runs program once and returns a session positioned on it.
func NewSession(name string, program *ast.Block, machine *vm.VM, gen *generator.Generator, log *slog.Logger) (*Session, error) {
	s := &Session{
		name:      name,
		original:  program,
		machine:   machine,
		generator: gen,
		log:       log,
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Lines returns the segments of the current program's last run.
func (s *Session) Lines() []ast.Segment {
	return s.result.Lines
}

// Program returns the current program.
func (s *Session) Program() *ast.Block {
	return s.current
}

// Result returns the current program's last run.
func (s *Session) Result() *vm.Result {
	return s.result
}

// Mutate applies one random edit to the current program and runs the
// result. On failure the session keeps its previous program.
func (s *Session) Mutate() error {
	next, err := s.generator.Transform(s.current)
	if err != nil {
		return fmt.Errorf("failed to mutate: %w", err)
	}
	res, err := s.machine.Run(next)
	if err != nil {
		return fmt.Errorf("failed to run mutation: %w", err)
	}

	s.current = next
	s.result = res
	s.generation++
	s.log.Info("Program mutated", "generation", s.generation, "segments", len(res.Lines))
	return nil
}

// MutateN calls Mutate n times, stopping at the first failure.
func (s *Session) MutateN(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Mutate(); err != nil {
			return err
		}
	}
	return nil
}

// Reset restores the original program and runs it.
func (s *Session) Reset() error {
	res, err := s.machine.Run(s.original)
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", s.name, err)
	}
	s.current = s.original
	s.result = res
	s.generation = 0
	return nil
}

// Status describes the current program in one line.
func (s *Session) Status() string {
	status := fmt.Sprintf("%s: %d segments in %d steps", s.name, len(s.result.Lines), s.result.Steps)
	if s.result.Truncated {
		status += " (truncated)"
	}
	if s.generation > 0 {
		status += fmt.Sprintf(", mutation %d", s.generation)
	}
	return status
}
