// Package classify decides what kind of value a macro replacement body
// represents. Classification is a pure, total function over the body
// text: every input maps to exactly one Value, with Opaque as the
// catch-all, so it never fails.
package classify

import (
	"strings"

	"github.com/bindgen-tools/cmacros/pkg/clex"
)

// Classify tokenizes body and returns its Value. Ordered attempts,
// first match wins: single literal, signed literal, simple expression,
// then Opaque.
func Classify(body string) Value {
	body = strings.TrimSpace(body)
	if body == "" {
		return Opaque{}
	}

	tokens := clex.New(body).AllTokens()
	if len(tokens) == 0 {
		return Opaque{Text: body}
	}

	if len(tokens) == 1 {
		tok := tokens[0]
		switch tok.Type {
		case clex.Number:
			if v, ok := classifyNumber(tok.Text, false); ok {
				return v
			}
			return Opaque{Text: body}
		case clex.String:
			return Str{Text: tok.Text}
		case clex.CharConst:
			return Char{Text: tok.Text}
		}
	}

	// A sign directly applied to a single numeric literal is still a
	// literal: "-1", "+2.5".
	if len(tokens) == 2 && tokens[0].Type == clex.Punct &&
		(tokens[0].Text == "-" || tokens[0].Text == "+") &&
		tokens[1].Type == clex.Number {
		if v, ok := classifyNumber(tokens[1].Text, tokens[0].Text == "-"); ok {
			return v
		}
		return Opaque{Text: body}
	}

	if isSimpleExpr(tokens) {
		return Expr{Tokens: tokens}
	}
	return Opaque{Text: body}
}

// exprPuncts are the operators allowed inside an Expr body. Logical
// not is excluded: C applies it to integers while Go only accepts
// booleans, so a body containing it has no direct constant rendering.
var exprPuncts = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&": true, "|": true, "^": true, "~": true,
	"<<": true, ">>": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
	"&&": true, "||": true,
	"(": true, ")": true,
}

// isSimpleExpr reports whether tokens form an arithmetic or bitwise
// expression: only identifiers, numbers, allowed operators and
// parentheses, with no function-call pattern (identifier immediately
// followed by '(') and no cast pattern ('(' identifier ')' followed by
// an operand).
func isSimpleExpr(tokens []clex.Token) bool {
	for i, tok := range tokens {
		switch tok.Type {
		case clex.Ident:
			if i+1 < len(tokens) && tokens[i+1].Type == clex.Punct && tokens[i+1].Text == "(" {
				return false // call pattern
			}
		case clex.Number:
			if _, ok := classifyNumber(tok.Text, false); !ok {
				return false
			}
		case clex.Punct:
			if !exprPuncts[tok.Text] {
				return false
			}
		default:
			return false
		}
	}
	return !hasCastPattern(tokens)
}

// hasCastPattern detects the common cast shape "(ident)" or
// "(ident*...*)" followed by an operand. "(x) + 1" is an expression;
// "(int)x" and "(void*)0" are casts.
func hasCastPattern(tokens []clex.Token) bool {
	for i := 0; i+2 < len(tokens); i++ {
		if tokens[i].Text != "(" || tokens[i].Type != clex.Punct {
			continue
		}
		if tokens[i+1].Type != clex.Ident {
			continue
		}
		j := i + 2
		for j < len(tokens) && tokens[j].Type == clex.Punct && tokens[j].Text == "*" {
			j++
		}
		if j >= len(tokens) || tokens[j].Text != ")" || tokens[j].Type != clex.Punct {
			continue
		}
		if j+1 >= len(tokens) {
			continue
		}
		next := tokens[j+1]
		if next.Type == clex.Ident || next.Type == clex.Number ||
			(next.Type == clex.Punct && next.Text == "(") {
			return true
		}
	}
	return false
}

// classifyNumber parses a pp-number into an Integer or Float value.
// It returns false when the spelling is not a valid C literal (for
// example a bad suffix), in which case the body is Opaque.
func classifyNumber(text string, negative bool) (Value, bool) {
	lower := strings.ToLower(text)

	if strings.HasPrefix(lower, "0x") {
		digits, rest := span(text[2:], isHexDigit)
		if digits == "" {
			return nil, false
		}
		// Hex floats carry a p exponent or a fractional part.
		if strings.ContainsAny(rest, "pP.") {
			return classifyFloat(text, negative)
		}
		return finishInteger(digits, 16, rest, negative)
	}

	if strings.Contains(lower, ".") || strings.Contains(lower, "e") || strings.HasSuffix(lower, "f") {
		return classifyFloat(text, negative)
	}

	digits, rest := span(text, isDigit)
	if digits == "" {
		return nil, false
	}
	radix := 10
	if len(digits) > 1 && digits[0] == '0' {
		radix = 8
		for i := 1; i < len(digits); i++ {
			if digits[i] > '7' {
				return nil, false
			}
		}
		digits = digits[1:]
	}
	return finishInteger(digits, radix, rest, negative)
}

func finishInteger(digits string, radix int, suffix string, negative bool) (Value, bool) {
	v := Integer{Digits: digits, Radix: radix, Negative: negative}
	switch strings.ToLower(suffix) {
	case "":
	case "u":
		v.Unsigned = true
	case "l":
		v.Long = true
	case "ll":
		v.LongLong = true
	case "ul", "lu":
		v.Unsigned, v.Long = true, true
	case "ull", "llu":
		v.Unsigned, v.LongLong = true, true
	default:
		return nil, false
	}
	return v, true
}

func classifyFloat(text string, negative bool) (Value, bool) {
	v := Float{Text: text}
	lower := strings.ToLower(text)
	if strings.HasSuffix(lower, "f") {
		v.Single = true
		v.Text = text[:len(text)-1]
	} else if strings.HasSuffix(lower, "l") {
		v.Text = text[:len(text)-1]
	}
	if !validFloatBody(strings.ToLower(v.Text)) {
		return nil, false
	}
	if negative {
		v.Text = "-" + v.Text
	}
	return v, true
}

// validFloatBody checks a float literal with any suffix removed.
func validFloatBody(s string) bool {
	if s == "" || s == "." {
		return false
	}
	if strings.HasPrefix(s, "0x") {
		mant, rest := span(s[2:], func(c byte) bool { return isHexDigit(c) || c == '.' })
		if strings.Count(mant, ".") > 1 || strings.Trim(mant, ".") == "" {
			return false
		}
		// hex floats require a binary exponent
		if !strings.HasPrefix(rest, "p") {
			return false
		}
		return validExponent(rest[1:])
	}
	mant, rest := span(s, func(c byte) bool { return isDigit(c) || c == '.' })
	if strings.Count(mant, ".") > 1 || strings.Trim(mant, ".") == "" {
		return false
	}
	if rest == "" {
		return strings.Contains(mant, ".")
	}
	if rest[0] != 'e' {
		return false
	}
	return validExponent(rest[1:])
}

func validExponent(s string) bool {
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	digits, rest := span(s, isDigit)
	return digits != "" && rest == ""
}

func span(s string, pred func(byte) bool) (match, rest string) {
	i := 0
	for i < len(s) && pred(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
