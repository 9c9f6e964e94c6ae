// Package macro defines the data model for #define records extracted
// from C header source.
package macro

// Def is one macro definition.
type Def struct {
	// Name of the macro.
	Name string
	// Params holds the parameter names of a function-like macro.
	// It is nil for object-like macros. A non-nil empty slice means
	// the macro was defined as NAME() with an empty parameter list.
	Params []string
	// Body is the replacement text with line continuations joined,
	// comments stripped and surrounding whitespace trimmed. It is
	// otherwise uninterpreted.
	Body string
	// Line is the 1-based source line of the #define directive.
	Line int
}

// FunctionLike reports whether the macro takes a parameter list.
func (d Def) FunctionLike() bool {
	return d.Params != nil
}

// Diagnostic records a non-fatal problem found during extraction.
type Diagnostic struct {
	Line    int
	Message string
}

// Set holds macro definitions in textual order. Redefining a name
// replaces the earlier entry in place (last-wins), matching C
// preprocessor semantics within one translation unit.
type Set struct {
	defs  []Def
	index map[string]int
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Define adds d to the set. If a macro with the same name already
// exists it is replaced and Define reports true.
func (s *Set) Define(d Def) bool {
	if i, ok := s.index[d.Name]; ok {
		s.defs[i] = d
		return true
	}
	s.index[d.Name] = len(s.defs)
	s.defs = append(s.defs, d)
	return false
}

// Lookup returns the definition for name, if any.
func (s *Set) Lookup(name string) (Def, bool) {
	i, ok := s.index[name]
	if !ok {
		return Def{}, false
	}
	return s.defs[i], true
}

// Defs returns the definitions in textual order.
func (s *Set) Defs() []Def {
	return s.defs
}

// Len returns the number of definitions.
func (s *Set) Len() int {
	return len(s.defs)
}
