// Package compiler turns hyperlines source text into program trees.
//
// The pipeline has two phases:
// 1. Lexer: tokenization, rejecting illegal characters
// 2. Parser: block tree construction
//
// CompileChecked additionally type-checks the tree against a registry.
package compiler

import (
	"errors"
	"fmt"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/compiler/lexer"
	"github.com/josephg/hyperlines/pkg/compiler/parser"
	"github.com/josephg/hyperlines/pkg/script"
	"github.com/josephg/hyperlines/pkg/vm"
	"github.com/josephg/hyperlines/pkg/walker"
)

// Compile parses source, which must contain exactly one root block.
// Syntax errors are returned as *CompileError.
func Compile(source string) (*ast.Block, error) {
	if err := scanIllegal(source); err != nil {
		return nil, err
	}

	p := parser.New(lexer.New(source))
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		var pe *parser.ParserError
		if errors.As(errs[0], &pe) {
			return nil, NewParserErrorWithContext(pe.Message, pe.Line, pe.Column, source)
		}
		return nil, errs[0]
	}
	return program, nil
}

// CompileChecked parses source and verifies the result with walker.Check.
// Type errors are returned wrapped, so vm.IsErrorType applies to them.
func CompileChecked(registry *vm.Registry, source string) (*ast.Block, error) {
	program, err := Compile(source)
	if err != nil {
		return nil, err
	}
	if err := walker.Check(registry, program); err != nil {
		return nil, fmt.Errorf("type check failed: %w", err)
	}
	return program, nil
}

// CompileScript compiles a loaded program file. Errors carry the file
// name.
func CompileScript(registry *vm.Registry, s *script.Script) (*ast.Block, error) {
	program, err := CompileChecked(registry, s.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.FileName, err)
	}
	return program, nil
}

// CompileFile loads, decodes and compiles a program file from disk.
func CompileFile(registry *vm.Registry, path string, enc script.Encoding) (*ast.Block, error) {
	s, err := script.LoadFile(path, enc)
	if err != nil {
		return nil, err
	}
	return CompileScript(registry, s)
}

// scanIllegal reports the first character the lexer rejects.
func scanIllegal(source string) error {
	l := lexer.New(source)
	for {
		tok := l.NextToken()
		switch tok.Type {
		case lexer.TOKEN_EOF:
			return nil
		case lexer.TOKEN_ILLEGAL:
			return NewLexerErrorWithContext(
				fmt.Sprintf("illegal character %q", tok.Literal), tok.Line, tok.Column, source)
		}
	}
}
