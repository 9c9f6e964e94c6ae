package translate

import (
	"fmt"
	"io"
	"strings"

	"github.com/bindgen-tools/cmacros/pkg/clex"
)

// Emitter writes emitted declarations to an output stream, one per
// line. Formatting beyond that is the caller's concern.
type Emitter struct {
	w io.Writer
}

// NewEmitter creates an emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// WriteHeader writes the generated-code marker and package clause.
func (e *Emitter) WriteHeader(pkg string) {
	fmt.Fprintf(e.w, "// Code generated by cmacros. DO NOT EDIT.\n\npackage %s\n\n", pkg)
}

// WriteResults writes every Emit declaration in order and returns how
// many were written. Skip outcomes produce no output.
func (e *Emitter) WriteResults(results []Result) int {
	emitted := 0
	for _, r := range results {
		if out, ok := r.Outcome.(Emit); ok {
			fmt.Fprintln(e.w, out.Decl)
			emitted++
		}
	}
	return emitted
}

// RenderTokens renders an expression token sequence back to source
// text, applying rename to identifier tokens. Tokens are separated by
// single spaces except inside parentheses and after unary prefix
// operators, which hug their operands.
func RenderTokens(tokens []clex.Token, rename func(string) string) string {
	var sb strings.Builder
	for i, tok := range tokens {
		text := tok.Text
		if tok.Type == clex.Ident && rename != nil {
			text = rename(text)
		}
		if i > 0 && text != ")" && tokens[i-1].Text != "(" && !isUnaryPrefix(tokens, i-1) {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// isUnaryPrefix reports whether tokens[i] is an operator in prefix
// position: a sign or complement at the start of the sequence or
// directly after another operator or opening parenthesis.
func isUnaryPrefix(tokens []clex.Token, i int) bool {
	tok := tokens[i]
	if tok.Type != clex.Punct {
		return false
	}
	switch tok.Text {
	case "-", "+", "~", "^", "!":
	default:
		return false
	}
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	return prev.Type == clex.Punct && prev.Text != ")"
}

// goCharLiteral converts a C character constant to a Go rune literal.
// Most escapes are shared between the two languages; the exceptions
// are C's short octal escapes (Go requires exactly three digits) and
// the \? and \e extensions.
func goCharLiteral(text string) string {
	return reescape(text)
}

// goStringLiteral converts a C string literal to a Go string literal,
// preserving escapes verbatim where the syntax overlaps.
func goStringLiteral(text string) string {
	return reescape(text)
}

func reescape(text string) string {
	var sb strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		if c != '\\' || i+1 >= len(text) {
			sb.WriteByte(c)
			i++
			continue
		}
		next := text[i+1]
		switch {
		case next >= '0' && next <= '7':
			// octal escape: C allows 1-3 digits, Go exactly 3
			j := i + 1
			for j < len(text) && j < i+4 && text[j] >= '0' && text[j] <= '7' {
				j++
			}
			digits := text[i+1 : j]
			sb.WriteByte('\\')
			for k := len(digits); k < 3; k++ {
				sb.WriteByte('0')
			}
			sb.WriteString(digits)
			i = j
		case next == '?':
			// C trigraph guard, no meaning in Go
			sb.WriteByte('?')
			i += 2
		case next == 'e':
			// GNU extension for ESC
			sb.WriteString(`\x1b`)
			i += 2
		default:
			sb.WriteByte('\\')
			sb.WriteByte(next)
			i += 2
		}
	}
	return sb.String()
}
