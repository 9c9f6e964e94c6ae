// Package translate drives macro translation: each extracted macro is
// classified and handed to a translation policy which either emits a
// target-language declaration or skips the macro with a reason.
package translate

import (
	"github.com/bindgen-tools/cmacros/pkg/classify"
	"github.com/bindgen-tools/cmacros/pkg/macro"
)

// Outcome is the policy decision for one macro: Emit or Skip.
type Outcome interface {
	outcome()
}

// Emit carries a complete target-language declaration.
type Emit struct {
	Decl string
}

// Skip records why a macro was not translated.
type Skip struct {
	Reason string
}

func (Emit) outcome() {}
func (Skip) outcome() {}

// Policy decides how one classified macro is translated. The default
// implementation is GoPolicy; callers supply their own to change the
// target language or the translation rules.
type Policy interface {
	Decide(def macro.Def, v classify.Value) Outcome
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(def macro.Def, v classify.Value) Outcome

func (f PolicyFunc) Decide(def macro.Def, v classify.Value) Outcome {
	return f(def, v)
}

// Result pairs a macro with its classification and the policy outcome.
type Result struct {
	Def     macro.Def
	Value   classify.Value
	Outcome Outcome
}

// Translate classifies each macro exactly once, in input order, and
// applies the policy. It holds no state between calls: translating the
// same definitions twice yields identical results.
func Translate(defs []macro.Def, p Policy) []Result {
	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		v := classify.Classify(def.Body)
		results = append(results, Result{Def: def, Value: v, Outcome: p.Decide(def, v)})
	}
	return results
}
