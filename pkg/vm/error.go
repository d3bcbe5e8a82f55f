// Package vm provides error handling for the hyperlines engine.
package vm

import (
	"errors"
	"fmt"

	"github.com/josephg/hyperlines/pkg/ast"
)

// ErrorType represents the kind of engine error.
type ErrorType string

const (
	ErrorUnboundName     ErrorType = "UNBOUND_NAME"
	ErrorNotCallable     ErrorType = "NOT_CALLABLE"
	ErrorTypeAssertion   ErrorType = "TYPE_ASSERTION"
	ErrorTypeMismatch    ErrorType = "TYPE_MISMATCH"
	ErrorUnknownBlock    ErrorType = "UNKNOWN_BLOCK"
	ErrorUnknownFunction ErrorType = "UNKNOWN_FUNCTION"
	ErrorArityMismatch   ErrorType = "ARITY_MISMATCH"
	ErrorInvalidArgument ErrorType = "INVALID_ARGUMENT"
)

// RuntimeError is returned by evaluation, scheduling and typed walking.
// Every RuntimeError is fatal to the call that produced it.
type RuntimeError struct {
	Type    ErrorType
	Message string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// NewRuntimeError creates a new RuntimeError.
func NewRuntimeError(errType ErrorType, message string) *RuntimeError {
	return &RuntimeError{
		Type:    errType,
		Message: message,
	}
}

// IsErrorType reports whether err wraps a RuntimeError of type t.
func IsErrorType(err error, t ErrorType) bool {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return rerr.Type == t
	}
	return false
}

// NewUnboundNameError reports a variable with no value in the chain.
func NewUnboundNameError(name string) *RuntimeError {
	return NewRuntimeError(ErrorUnboundName, fmt.Sprintf("unbound name: %s", name))
}

// NewNotCallableError reports a call whose callee is not a function.
func NewNotCallableError(value any) *RuntimeError {
	return NewRuntimeError(ErrorNotCallable, fmt.Sprintf("value of type %T is not callable", value))
}

// NewTypeAssertionError reports a lambda checked against a non-function type.
func NewTypeAssertionError(t ast.Type) *RuntimeError {
	return NewRuntimeError(ErrorTypeAssertion, fmt.Sprintf("lambda where %s is expected", t))
}

// NewTypeMismatchError reports an expression of the wrong semantic type.
func NewTypeMismatchError(what string, want, got ast.Type) *RuntimeError {
	return NewRuntimeError(ErrorTypeMismatch, fmt.Sprintf("%s: expected %s, got %s", what, want, got))
}

// NewUnknownBlockError reports a block name missing from the registry.
func NewUnknownBlockError(name string) *RuntimeError {
	return NewRuntimeError(ErrorUnknownBlock, fmt.Sprintf("unknown block: %s", name))
}

// NewUnknownFunctionError reports a callee the typed walker cannot resolve.
func NewUnknownFunctionError(name string) *RuntimeError {
	return NewRuntimeError(ErrorUnknownFunction, fmt.Sprintf("unknown function: %s", name))
}

// NewArityMismatchError reports a count that disagrees with a signature.
func NewArityMismatchError(what, name string, want, got int) *RuntimeError {
	return NewRuntimeError(ErrorArityMismatch, fmt.Sprintf("%s %s: expected %d, got %d", what, name, want, got))
}

// NewInvalidArgumentError reports an argument value of the wrong shape.
func NewInvalidArgumentError(name string, index int, want string, got any) *RuntimeError {
	return NewRuntimeError(ErrorInvalidArgument, fmt.Sprintf("%s: argument %d must be %s, got %T", name, index, want, got))
}
