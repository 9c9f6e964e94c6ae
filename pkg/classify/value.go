package classify

import "github.com/bindgen-tools/cmacros/pkg/clex"

// Value is the classification of a macro replacement body. It is a
// closed set: Integer, Float, Char, Str, Expr and Opaque.
type Value interface {
	valueKind()
}

// Integer is a single integer literal, possibly signed.
type Integer struct {
	// Digits is the literal without radix prefix, sign or suffix.
	Digits string
	// Radix is 8, 10 or 16.
	Radix int
	// Suffix flags, recorded separately from the value.
	Unsigned bool
	Long     bool
	LongLong bool
	// Negative is set when a unary minus preceded the literal.
	Negative bool
}

// Float is a single floating-point literal.
type Float struct {
	// Text is the literal with any f/F/l/L suffix removed.
	Text string
	// Single is set for an f/F suffix (single precision).
	Single bool
}

// Char is a character constant, quotes included.
type Char struct {
	Text string
}

// Str is a string literal, quotes and escapes included verbatim.
type Str struct {
	Text string
}

// Expr is a body made of identifiers, numbers, arithmetic or bitwise
// operators and parentheses. The token sequence is preserved so the
// emitter can substitute identifiers without re-lexing.
type Expr struct {
	Tokens []clex.Token
}

// Opaque is any body that does not fit the other kinds: function
// calls, casts, ternaries, statements, empty bodies.
type Opaque struct {
	Text string
}

func (Integer) valueKind() {}
func (Float) valueKind()   {}
func (Char) valueKind()    {}
func (Str) valueKind()     {}
func (Expr) valueKind()    {}
func (Opaque) valueKind()  {}
