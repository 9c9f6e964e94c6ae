package clex

// TokenType represents the type of a macro body token.
type TokenType int

const (
	EOF TokenType = iota
	Ident         // MAX_RETRIES, foo
	Number        // 42, 0x1f, 3.14e-2f (preprocessing number)
	String        // "hello\n"
	CharConst     // 'a', '\0'
	Punct         // operators and punctuation
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Ident:
		return "IDENT"
	case Number:
		return "NUMBER"
	case String:
		return "STRING"
	case CharConst:
		return "CHAR"
	case Punct:
		return "PUNCT"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexical token of a macro replacement body. Text holds
// the original spelling, including quotes for string and character
// literals.
type Token struct {
	Type TokenType
	Text string
}

// IsIdentifier checks if s is a valid C identifier.
func IsIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	if !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentContinue(s[i]) {
			return false
		}
	}
	return true
}
