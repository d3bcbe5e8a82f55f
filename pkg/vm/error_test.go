package vm

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/josephg/hyperlines/pkg/ast"
)

func TestRuntimeError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RuntimeError
		want string
	}{
		{"unbound", NewUnboundNameError("x"), "[UNBOUND_NAME] unbound name: x"},
		{"not callable", NewNotCallableError(1.0), "[NOT_CALLABLE] value of type float64 is not callable"},
		{"type assertion", NewTypeAssertionError(ast.Scalar), "[TYPE_ASSERTION] lambda where Scalar is expected"},
		{"unknown block", NewUnknownBlockError("b"), "[UNKNOWN_BLOCK] unknown block: b"},
		{"arity", NewArityMismatchError("block", "grid", 2, 1), "[ARITY_MISMATCH] block grid: expected 2, got 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsErrorType(t *testing.T) {
	wrapped := fmt.Errorf("block line: %w", NewUnboundNameError("p"))

	if !IsErrorType(wrapped, ErrorUnboundName) {
		t.Error("expected wrapped error to match")
	}
	if IsErrorType(wrapped, ErrorNotCallable) {
		t.Error("expected type mismatch")
	}
	if IsErrorType(errors.New("plain"), ErrorUnboundName) {
		t.Error("plain errors never match")
	}
	if IsErrorType(nil, ErrorUnboundName) {
		t.Error("nil never matches")
	}
	if !strings.Contains(wrapped.Error(), "block line") {
		t.Errorf("wrapping context lost: %v", wrapped)
	}
}
