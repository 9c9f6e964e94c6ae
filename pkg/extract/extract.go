// Package extract scans raw C header text for #define directives and
// produces structured macro definitions. It understands comments,
// string and character literals, line continuations and function-like
// parameter lists, but performs no preprocessing: conditional blocks
// are not evaluated and macro bodies are not expanded.
package extract

import (
	"fmt"
	"strings"

	"github.com/bindgen-tools/cmacros/pkg/clex"
	"github.com/bindgen-tools/cmacros/pkg/macro"
)

// Extract scans src and returns the macro definitions found, in
// textual order, along with any diagnostics. Redefining a macro
// replaces the earlier entry (last-wins) and records an informational
// diagnostic. Malformed #define lines are skipped with a diagnostic;
// extraction never fails.
func Extract(src string) ([]macro.Def, []macro.Diagnostic) {
	set, diags := ExtractSet(src)
	return set.Defs(), diags
}

// ExtractSet is like Extract but returns the definitions as a Set for
// callers that want name lookup.
func ExtractSet(src string) (*macro.Set, []macro.Diagnostic) {
	set := macro.NewSet()
	var diags []macro.Diagnostic

	for _, line := range logicalLines(src) {
		s := &scanner{input: line.text}
		s.skipSpace()
		if !s.consumeByte('#') {
			continue
		}
		s.skipSpace()
		if !s.consume("define") {
			continue
		}
		// reject identifiers that merely start with "define"
		if c := s.peek(); isIdentContinue(c) {
			continue
		}
		s.skipSpace()

		def, err := parseDefine(s, line.num)
		if err != nil {
			diags = append(diags, macro.Diagnostic{Line: line.num, Message: err.Error()})
			continue
		}
		if prev, ok := set.Lookup(def.Name); ok {
			diags = append(diags, macro.Diagnostic{
				Line:    line.num,
				Message: fmt.Sprintf("redefinition of macro %s (previous definition at line %d)", def.Name, prev.Line),
			})
		}
		set.Define(def)
	}
	return set, diags
}

// parseDefine parses the text after "#define". The cursor is at the
// first non-space character following the directive keyword.
func parseDefine(s *scanner, lineNum int) (macro.Def, error) {
	name := s.consumeWhile(isIdentContinue)
	if name == "" {
		return macro.Def{}, fmt.Errorf("could not parse macro name from %q", strings.TrimSpace(s.tail()))
	}
	if !clex.IsIdentifier(name) {
		return macro.Def{}, fmt.Errorf("invalid macro name %q", name)
	}

	// A '(' directly after the name, with no intervening whitespace,
	// starts a parameter list. With whitespace it is part of the body.
	var params []string
	if s.peek() == '(' {
		var err error
		params, err = parseParamList(s)
		if err != nil {
			return macro.Def{}, err
		}
	}

	body := strings.TrimSpace(s.tail())
	return macro.Def{Name: name, Params: params, Body: body, Line: lineNum}, nil
}

// parseParamList parses "(a, b, ...)" starting at the opening paren.
// The returned slice is non-nil even for an empty list, so that NAME()
// remains distinguishable from an object-like NAME.
func parseParamList(s *scanner) ([]string, error) {
	params := []string{}
	s.next() // consume (
	for {
		s.skipSpace()
		c := s.peek()
		switch {
		case c == 0:
			return nil, fmt.Errorf("unterminated parameter list")
		case c == ')':
			s.next()
			return params, nil
		case c == ',':
			s.next()
		case c == '.':
			if !s.consume("...") {
				return nil, fmt.Errorf("unexpected character %q in macro parameter list", c)
			}
			params = append(params, "...")
		case isIdentContinue(c):
			params = append(params, s.consumeWhile(isIdentContinue))
		default:
			return nil, fmt.Errorf("unexpected character %q in macro parameter list", c)
		}
	}
}

// scanner is a byte cursor over one logical line.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) next() byte {
	c := s.peek()
	if s.pos < len(s.input) {
		s.pos++
	}
	return c
}

func (s *scanner) consumeByte(c byte) bool {
	if s.peek() == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) consume(text string) bool {
	if strings.HasPrefix(s.tail(), text) {
		s.pos += len(text)
		return true
	}
	return false
}

func (s *scanner) consumeWhile(pred func(byte) bool) string {
	start := s.pos
	for s.pos < len(s.input) && pred(s.input[s.pos]) {
		s.pos++
	}
	return s.input[start:s.pos]
}

func (s *scanner) skipSpace() {
	s.consumeWhile(func(c byte) bool { return c == ' ' || c == '\t' })
}

func (s *scanner) tail() string {
	return s.input[s.pos:]
}

func isIdentContinue(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
