package compiler

import (
	"fmt"
	"strings"
)

// CompileError is a syntax error with its location and an excerpt of the
// surrounding source.
type CompileError struct {
	// Phase is "lexer" or "parser".
	Phase string

	// Message is the human-readable error description.
	Message string

	// Line and Column are 1-indexed.
	Line   int
	Column int

	// Context holds up to two lines either side of the error line, with
	// a ^ under the error column.
	Context string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s error at line %d, column %d: %s\n%s",
			e.Phase, e.Line, e.Column, e.Message, e.Context)
	}
	return fmt.Sprintf("%s error at line %d, column %d: %s",
		e.Phase, e.Line, e.Column, e.Message)
}

// NewLexerErrorWithContext creates a CompileError for the lexer phase.
func NewLexerErrorWithContext(message string, line, column int, source string) *CompileError {
	return &CompileError{
		Phase:   "lexer",
		Message: message,
		Line:    line,
		Column:  column,
		Context: GenerateErrorContext(source, line, column),
	}
}

// NewParserErrorWithContext creates a CompileError for the parser phase.
func NewParserErrorWithContext(message string, line, column int, source string) *CompileError {
	return &CompileError{
		Phase:   "parser",
		Message: message,
		Line:    line,
		Column:  column,
		Context: GenerateErrorContext(source, line, column),
	}
}

// GenerateErrorContext formats the source around line, marking the error
// line with > and the column with ^.
//
// Example output:
//
//	  2 |   grid(2, 2) {|g|
//	  3 |     each(g) {|p|
//	> 4 |       line(p, )
//	    |               ^
//	  5 |     }
//	  6 |   }
func GenerateErrorContext(source string, line, column int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	start := max(line-3, 0)
	end := min(line+2, len(lines))
	width := len(fmt.Sprintf("%d", end))

	var buf strings.Builder
	for i := start; i < end; i++ {
		lineNum := i + 1
		content := strings.TrimRight(lines[i], "\r")

		if lineNum != line {
			buf.WriteString(fmt.Sprintf("  %*d | %s\n", width, lineNum, content))
			continue
		}
		buf.WriteString(fmt.Sprintf("> %*d | %s\n", width, lineNum, content))
		buf.WriteString(strings.Repeat(" ", 2+width))
		buf.WriteString(" | ")
		if column > 1 {
			buf.WriteString(strings.Repeat(" ", column-1))
		}
		buf.WriteString("^\n")
	}
	return buf.String()
}
