package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TranslateTestSpec is a single translation test case.
type TranslateTestSpec struct {
	Name      string   `yaml:"name"`
	Input     string   `yaml:"input"`
	Expect    []string `yaml:"expect"`     // Strings that must appear in output
	ExpectNot []string `yaml:"expect_not"` // Strings that must NOT appear in output
	Skip      string   `yaml:"skip,omitempty"`
}

// TranslateTestFile is the translate.yaml file structure.
type TranslateTestFile struct {
	Tests []TranslateTestSpec `yaml:"tests"`
}

func TestTranslateIntegration(t *testing.T) {
	data, err := os.ReadFile("testdata/translate.yaml")
	if err != nil {
		t.Fatalf("translate.yaml not found: %v", err)
	}

	var testFile TranslateTestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse translate.yaml: %v", err)
	}

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Skip != "" {
				t.Skip(tc.Skip)
			}

			dir := t.TempDir()
			header := filepath.Join(dir, "input.h")
			if err := os.WriteFile(header, []byte(tc.Input), 0o644); err != nil {
				t.Fatal(err)
			}

			resetFlags()
			var out, errOut bytes.Buffer
			cmd := newRootCmd(&out, &errOut)
			cmd.SetArgs([]string{"translate", "--package", "testout", header})
			if err := cmd.Execute(); err != nil {
				t.Fatalf("translate failed: %v\nstderr: %s", err, errOut.String())
			}

			output := out.String()
			for _, want := range tc.Expect {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
			for _, notWant := range tc.ExpectNot {
				if strings.Contains(output, notWant) {
					t.Errorf("output should not contain %q:\n%s", notWant, output)
				}
			}
		})
	}
}
