package classify

import (
	"reflect"
	"testing"

	"github.com/bindgen-tools/cmacros/pkg/clex"
)

func TestClassifyInteger(t *testing.T) {
	tests := []struct {
		input    string
		expected Integer
	}{
		{"5", Integer{Digits: "5", Radix: 10}},
		{"0x10", Integer{Digits: "10", Radix: 16}},
		{"0X10", Integer{Digits: "10", Radix: 16}},
		{"017", Integer{Digits: "17", Radix: 8}},
		{"0", Integer{Digits: "0", Radix: 10}},
		{"42u", Integer{Digits: "42", Radix: 10, Unsigned: true}},
		{"42U", Integer{Digits: "42", Radix: 10, Unsigned: true}},
		{"42l", Integer{Digits: "42", Radix: 10, Long: true}},
		{"42ll", Integer{Digits: "42", Radix: 10, LongLong: true}},
		{"42ul", Integer{Digits: "42", Radix: 10, Unsigned: true, Long: true}},
		{"0xFFull", Integer{Digits: "FF", Radix: 16, Unsigned: true, LongLong: true}},
		{"-1", Integer{Digits: "1", Radix: 10, Negative: true}},
		{"+7", Integer{Digits: "7", Radix: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Classify(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Classify(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClassifyFloat(t *testing.T) {
	tests := []struct {
		input    string
		expected Float
	}{
		{"3.14", Float{Text: "3.14"}},
		{"3.14f", Float{Text: "3.14", Single: true}},
		{"3.14F", Float{Text: "3.14", Single: true}},
		{"3.14l", Float{Text: "3.14"}},
		{"1e5", Float{Text: "1e5"}},
		{"1.5e-3", Float{Text: "1.5e-3"}},
		{".5", Float{Text: ".5"}},
		{"-2.5", Float{Text: "-2.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Classify(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Classify(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClassifyCharAndString(t *testing.T) {
	if got := Classify(`'a'`); !reflect.DeepEqual(got, Char{Text: `'a'`}) {
		t.Errorf("Classify('a') = %#v", got)
	}
	if got := Classify(`'\n'`); !reflect.DeepEqual(got, Char{Text: `'\n'`}) {
		t.Errorf(`Classify('\n') = %#v`, got)
	}
	if got := Classify(`"hi"`); !reflect.DeepEqual(got, Str{Text: `"hi"`}) {
		t.Errorf(`Classify("hi") = %#v`, got)
	}
	if got := Classify(`"a \"quoted\" b"`); !reflect.DeepEqual(got, Str{Text: `"a \"quoted\" b"`}) {
		t.Errorf("escapes not preserved: %#v", got)
	}
}

func TestClassifyExpr(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []clex.Token
	}{
		{
			name:  "shift referencing identifier",
			input: "(1 << A)",
			want: []clex.Token{
				{Type: clex.Punct, Text: "("},
				{Type: clex.Number, Text: "1"},
				{Type: clex.Punct, Text: "<<"},
				{Type: clex.Ident, Text: "A"},
				{Type: clex.Punct, Text: ")"},
			},
		},
		{
			name:  "addition of macros",
			input: "A + B",
			want: []clex.Token{
				{Type: clex.Ident, Text: "A"},
				{Type: clex.Punct, Text: "+"},
				{Type: clex.Ident, Text: "B"},
			},
		},
		{
			name:  "single identifier alias",
			input: "OTHER",
			want:  []clex.Token{{Type: clex.Ident, Text: "OTHER"}},
		},
		{
			name:  "parenthesized identifier",
			input: "(FLAG)",
			want: []clex.Token{
				{Type: clex.Punct, Text: "("},
				{Type: clex.Ident, Text: "FLAG"},
				{Type: clex.Punct, Text: ")"},
			},
		},
		{
			name:  "bitwise complement",
			input: "~0x0F",
			want: []clex.Token{
				{Type: clex.Punct, Text: "~"},
				{Type: clex.Number, Text: "0x0F"},
			},
		},
		{
			name:  "parenthesized negative",
			input: "(-1)",
			want: []clex.Token{
				{Type: clex.Punct, Text: "("},
				{Type: clex.Punct, Text: "-"},
				{Type: clex.Number, Text: "1"},
				{Type: clex.Punct, Text: ")"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.input).(Expr)
			if !ok {
				t.Fatalf("Classify(%q) = %#v, want Expr", tt.input, Classify(tt.input))
			}
			if !reflect.DeepEqual(got.Tokens, tt.want) {
				t.Errorf("tokens = %v, want %v", got.Tokens, tt.want)
			}
		})
	}
}

func TestClassifyOpaque(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"function call", "foo(1)"},
		{"cast", "(int)x"},
		{"cast of expression", "(size_t)(x + 1)"},
		{"ternary", "a ? b : c"},
		{"assignment", "x = 1"},
		{"statement", "do_thing();"},
		{"comma at top level", "1, 2"},
		{"string inside expression", `"a" + 1`},
		{"bad integer suffix", "12q"},
		{"bad octal digit", "08"},
		{"token pasting", "a ## b"},
		{"stringize", "#x"},
		{"logical not", "!READY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Classify(tt.input).(Opaque); !ok {
				t.Errorf("Classify(%q) = %#v, want Opaque", tt.input, Classify(tt.input))
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	inputs := []string{"0x10", "(A + B)", "foo(1)", `"s"`, "3.14f"}
	for _, in := range inputs {
		if !reflect.DeepEqual(Classify(in), Classify(in)) {
			t.Errorf("Classify(%q) not deterministic", in)
		}
	}
}
