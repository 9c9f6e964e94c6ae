// Package config loads translation policy overrides from a YAML file.
// Overrides let callers skip known-untranslatable macros, pin the Go
// type of specific constants and rewrite emitted identifiers, without
// writing a custom policy.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bindgen-tools/cmacros/pkg/classify"
	"github.com/bindgen-tools/cmacros/pkg/macro"
	"github.com/bindgen-tools/cmacros/pkg/translate"
)

// File is the policy override file.
//
//	package: sqlite3
//	skip:
//	  - SQLITE_EXTERN
//	  - SQLITE_TRANSIENT
//	types:
//	  SQLITE_VERSION_NUMBER: int
//	strip_prefix: SQLITE_
type File struct {
	// Package names the emitted Go package. Optional; the CLI flag
	// takes precedence.
	Package string `yaml:"package,omitempty"`
	// Skip lists macro names that are never translated.
	Skip []string `yaml:"skip,omitempty"`
	// Types pins the Go type for specific macros by name.
	Types map[string]string `yaml:"types,omitempty"`
	// StripPrefix is removed from the front of emitted identifiers.
	StripPrefix string `yaml:"strip_prefix,omitempty"`
	// AddPrefix is prepended to emitted identifiers after stripping.
	AddPrefix string `yaml:"add_prefix,omitempty"`
}

// Load reads and parses a policy file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses policy file contents.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &f, nil
}

// Rename returns the identifier mapping implied by the prefix rules,
// or nil when no rule is configured.
func (f *File) Rename() func(string) string {
	if f.StripPrefix == "" && f.AddPrefix == "" {
		return nil
	}
	return func(name string) string {
		name = strings.TrimPrefix(name, f.StripPrefix)
		return f.AddPrefix + name
	}
}

// Policy builds the default Go policy for defs with this file's
// overrides applied.
func (f *File) Policy(defs []macro.Def) translate.Policy {
	base := translate.NewGoPolicy(defs)
	base.Rename = f.Rename()
	if len(f.Types) > 0 {
		base.TypeOverride = f.Types
	}
	if len(f.Skip) == 0 {
		return base
	}
	skip := make(map[string]bool, len(f.Skip))
	for _, name := range f.Skip {
		skip[name] = true
	}
	return skipPolicy{skip: skip, base: base}
}

// skipPolicy rejects configured names before delegating.
type skipPolicy struct {
	skip map[string]bool
	base translate.Policy
}

func (p skipPolicy) Decide(def macro.Def, v classify.Value) translate.Outcome {
	if p.skip[def.Name] {
		return translate.Skip{Reason: "skipped by config"}
	}
	return p.base.Decide(def, v)
}
