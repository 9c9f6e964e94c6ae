package translate

import (
	"fmt"

	"github.com/bindgen-tools/cmacros/pkg/classify"
	"github.com/bindgen-tools/cmacros/pkg/clex"
	"github.com/bindgen-tools/cmacros/pkg/macro"
)

// GoPolicy is the default translation policy. It emits Go constant
// declarations for literal and simple-expression macros and skips
// everything else. Expression identifiers are resolved by name against
// the full macro set, forward and backward; unresolved, circular, or
// skipped-macro references downgrade to Skip so that every emitted
// declaration names only emitted constants.
type GoPolicy struct {
	defs map[string]macro.Def

	// Rename maps a macro name to the emitted Go identifier. Nil
	// means names are emitted unchanged. It is also applied to
	// identifiers inside expression initializers.
	Rename func(string) string

	// TypeOverride pins the Go type for specific macros by name,
	// overriding suffix-based inference.
	TypeOverride map[string]string
}

// NewGoPolicy creates a policy resolving expression references against
// defs. The slice should be the complete extraction result so that
// forward references resolve.
func NewGoPolicy(defs []macro.Def) *GoPolicy {
	m := make(map[string]macro.Def, len(defs))
	for _, d := range defs {
		m[d.Name] = d
	}
	return &GoPolicy{defs: m}
}

// Decide implements Policy.
func (p *GoPolicy) Decide(def macro.Def, v classify.Value) Outcome {
	if def.FunctionLike() {
		return Skip{Reason: "function-like macro"}
	}

	switch v := v.(type) {
	case classify.Integer:
		return p.emitConst(def.Name, p.intType(def.Name, v), intLiteral(v))
	case classify.Float:
		typ := "float64"
		if v.Single {
			typ = "float32"
		}
		return p.emitConst(def.Name, p.overrideType(def.Name, typ), v.Text)
	case classify.Char:
		return p.emitConst(def.Name, p.overrideType(def.Name, "rune"), goCharLiteral(v.Text))
	case classify.Str:
		return p.emitConst(def.Name, p.overrideType(def.Name, "string"), goStringLiteral(v.Text))
	case classify.Expr:
		return p.decideExpr(def, v)
	case classify.Opaque:
		if def.Body == "" {
			return Skip{Reason: "empty body"}
		}
		return Skip{Reason: "untranslatable body"}
	}
	return Skip{Reason: "unknown value kind"}
}

func (p *GoPolicy) decideExpr(def macro.Def, v classify.Expr) Outcome {
	if reason := p.refSkipReason(v.Tokens, map[string]bool{def.Name: true}); reason != "" {
		return Skip{Reason: reason}
	}

	expr := RenderTokens(goTokens(v.Tokens), p.Rename)
	if typ := p.overrideType(def.Name, ""); typ != "" {
		return Emit{Decl: fmt.Sprintf("const %s %s = %s", p.rename(def.Name), typ, expr)}
	}
	// Untyped so mixed-width references still compile.
	return Emit{Decl: fmt.Sprintf("const %s = %s", p.rename(def.Name), expr)}
}

// refSkipReason walks identifier references depth first and returns a
// non-empty skip reason when any reference in the chain cannot emit: a
// name with no definition, a name already on the path (the chain loops
// back on itself), or a macro this policy itself skips. An expression
// that emits while referencing a skipped name would not compile.
func (p *GoPolicy) refSkipReason(tokens []clex.Token, path map[string]bool) string {
	for _, tok := range tokens {
		if tok.Type != clex.Ident {
			continue
		}
		if path[tok.Text] {
			return "circular reference"
		}
		ref, ok := p.defs[tok.Text]
		if !ok {
			return fmt.Sprintf("unresolved identifier: %s", tok.Text)
		}
		if ref.FunctionLike() {
			return fmt.Sprintf("reference to skipped macro: %s", tok.Text)
		}
		switch next := classify.Classify(ref.Body).(type) {
		case classify.Opaque:
			return fmt.Sprintf("reference to skipped macro: %s", tok.Text)
		case classify.Expr:
			path[tok.Text] = true
			if reason := p.refSkipReason(next.Tokens, path); reason != "" {
				return reason
			}
			delete(path, tok.Text)
		}
	}
	return ""
}

// goTokens maps C-only operator spellings to their Go equivalents.
// Bitwise complement is the one divergence in the allowed operator
// set: C spells it ~ where Go spells it ^.
func goTokens(tokens []clex.Token) []clex.Token {
	out := make([]clex.Token, len(tokens))
	copy(out, tokens)
	for i, tok := range out {
		if tok.Type == clex.Punct && tok.Text == "~" {
			out[i].Text = "^"
		}
	}
	return out
}

func (p *GoPolicy) emitConst(name, typ, value string) Outcome {
	return Emit{Decl: fmt.Sprintf("const %s %s = %s", p.rename(name), typ, value)}
}

func (p *GoPolicy) rename(name string) string {
	if p.Rename != nil {
		return p.Rename(name)
	}
	return name
}

func (p *GoPolicy) overrideType(name, fallback string) string {
	if t, ok := p.TypeOverride[name]; ok {
		return t
	}
	return fallback
}

// intType picks the Go type for an integer macro: unsigned on a u
// suffix, 64-bit on an l or ll suffix.
func (p *GoPolicy) intType(name string, v classify.Integer) string {
	wide := v.Long || v.LongLong
	typ := "int32"
	switch {
	case v.Unsigned && wide:
		typ = "uint64"
	case v.Unsigned:
		typ = "uint32"
	case wide:
		typ = "int64"
	}
	return p.overrideType(name, typ)
}

// intLiteral renders an integer value in its original radix, without
// the C type suffix.
func intLiteral(v classify.Integer) string {
	var lit string
	switch v.Radix {
	case 16:
		lit = "0x" + v.Digits
	case 8:
		lit = "0" + v.Digits
	default:
		lit = v.Digits
	}
	if v.Negative {
		lit = "-" + lit
	}
	return lit
}
