// Package clex tokenizes C macro replacement text into preprocessing
// tokens: identifiers, pp-numbers, string/char literals and punctuators.
// Input is a single logical line; newlines are treated as whitespace.
package clex

// Lexer tokenizes macro body text.
type Lexer struct {
	input string
	pos   int
}

// New creates a lexer over input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token, or an EOF token at end of input.
func (l *Lexer) NextToken() Token {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return Token{Type: EOF}
	}

	c := l.peek()
	switch {
	case c == '"':
		return l.scanString()
	case c == '\'':
		return l.scanCharConst()
	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		return l.scanNumber()
	case isIdentStart(c):
		return l.scanIdentifier()
	}
	return l.scanPunctuator()
}

// AllTokens returns all tokens in the input, excluding the final EOF.
func (l *Lexer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		l.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) scanString() Token {
	start := l.pos
	l.advance() // consume opening "
	for l.pos < len(l.input) {
		if l.peek() == '"' {
			l.advance()
			break
		}
		if l.peek() == '\\' && l.pos+1 < len(l.input) {
			l.advance() // skip backslash
			l.advance() // skip escaped char
			continue
		}
		l.advance()
	}
	return Token{Type: String, Text: l.input[start:l.pos]}
}

func (l *Lexer) scanCharConst() Token {
	start := l.pos
	l.advance() // consume opening '
	for l.pos < len(l.input) {
		if l.peek() == '\'' {
			l.advance()
			break
		}
		if l.peek() == '\\' && l.pos+1 < len(l.input) {
			l.advance()
			l.advance()
			continue
		}
		l.advance()
	}
	return Token{Type: CharConst, Text: l.input[start:l.pos]}
}

func (l *Lexer) scanNumber() Token {
	// Preprocessing numbers are broader than C numbers:
	// pp-number: digit | . digit | pp-number digit
	//          | pp-number identifier-nondigit | pp-number .
	//          | pp-number [eEpP] sign
	start := l.pos
	for l.pos < len(l.input) {
		c := l.peek()
		if isDigit(c) || isIdentContinue(c) || c == '.' {
			if (c == 'e' || c == 'E' || c == 'p' || c == 'P') && l.pos+1 < len(l.input) {
				next := l.input[l.pos+1]
				if next == '+' || next == '-' {
					l.advance()
					l.advance()
					continue
				}
			}
			l.advance()
		} else {
			break
		}
	}
	return Token{Type: Number, Text: l.input[start:l.pos]}
}

func (l *Lexer) scanIdentifier() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentContinue(l.peek()) {
		l.advance()
	}
	return Token{Type: Ident, Text: l.input[start:l.pos]}
}

func (l *Lexer) scanPunctuator() Token {
	remaining := l.input[l.pos:]

	if len(remaining) >= 3 {
		three := remaining[:3]
		if three == "<<=" || three == ">>=" || three == "..." {
			l.pos += 3
			return Token{Type: Punct, Text: three}
		}
	}

	if len(remaining) >= 2 {
		two := remaining[:2]
		switch two {
		case "->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=",
			"&&", "||", "*=", "/=", "%=", "+=", "-=", "&=", "^=", "|=", "##":
			l.pos += 2
			return Token{Type: Punct, Text: two}
		}
	}

	start := l.pos
	l.advance()
	return Token{Type: Punct, Text: l.input[start:l.pos]}
}
