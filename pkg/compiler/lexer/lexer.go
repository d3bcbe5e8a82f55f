package lexer

// Lexer tokenizes hyperlines source code.
type Lexer struct {
	input        string
	position     int  // current position in input
	readPosition int  // current reading position (after current char)
	ch           byte // current char
	line         int  // current line number
	column       int  // current column number
}

// New creates a new Lexer.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// GetSource returns the text being tokenized.
func (l *Lexer) GetSource() string {
	return l.input
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	line, column := l.line, l.column

	switch l.ch {
	case 0:
		return Token{Type: TOKEN_EOF, Line: line, Column: column}
	case '(':
		return l.single(TOKEN_LPAREN, line, column)
	case ')':
		return l.single(TOKEN_RPAREN, line, column)
	case '{':
		return l.single(TOKEN_LBRACE, line, column)
	case '}':
		return l.single(TOKEN_RBRACE, line, column)
	case '[':
		return l.single(TOKEN_LBRACKET, line, column)
	case ']':
		return l.single(TOKEN_RBRACKET, line, column)
	case '|':
		return l.single(TOKEN_PIPE, line, column)
	case ',':
		return l.single(TOKEN_COMMA, line, column)
	case '\\':
		return l.single(TOKEN_BACKSLASH, line, column)
	case '/':
		if l.peekChar() == '/' {
			return Token{Type: TOKEN_COMMENT, Literal: l.readComment(), Line: line, Column: column}
		}
		return l.single(TOKEN_ILLEGAL, line, column)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return Token{Type: TOKEN_ARROW, Literal: "->", Line: line, Column: column}
		}
		if isDigit(l.peekChar()) || l.peekChar() == '.' {
			return l.readNumber(line, column)
		}
		return l.single(TOKEN_ILLEGAL, line, column)
	}

	switch {
	case isLetter(l.ch):
		return Token{Type: TOKEN_IDENT, Literal: l.readIdentifier(), Line: line, Column: column}
	case isDigit(l.ch), l.ch == '.' && isDigit(l.peekChar()):
		return l.readNumber(line, column)
	default:
		return l.single(TOKEN_ILLEGAL, line, column)
	}
}

func (l *Lexer) single(t TokenType, line, column int) Token {
	tok := Token{Type: t, Literal: string(l.ch), Line: line, Column: column}
	l.readChar()
	return tok
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentifier reads an identifier.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a decimal number: an optional minus sign, digits, an
// optional fraction and an optional exponent. Either the integer or the
// fraction digits may be omitted, not both.
func (l *Lexer) readNumber(line, column int) Token {
	position := l.position
	if l.ch == '-' {
		l.readChar()
	}

	digits := 0
	for isDigit(l.ch) {
		l.readChar()
		digits++
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
			digits++
		}
	}
	if digits == 0 {
		return Token{Type: TOKEN_ILLEGAL, Literal: l.input[position:l.position], Line: line, Column: column}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && l.readPosition+1 < len(l.input) && isDigit(l.input[l.readPosition+1])) {
			l.readChar() // consume 'e'
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return Token{Type: TOKEN_NUMBER, Literal: l.input[position:l.position], Line: line, Column: column}
}

// readComment reads a line comment up to, not including, the newline.
func (l *Lexer) readComment() string {
	position := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return l.input[position:l.position]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
