package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bindgen-tools/cmacros/pkg/clex"
	"github.com/bindgen-tools/cmacros/pkg/config"
	"github.com/bindgen-tools/cmacros/pkg/extract"
	"github.com/bindgen-tools/cmacros/pkg/macro"
	"github.com/bindgen-tools/cmacros/pkg/translate"
)

var version = "0.1.0"

// translate command flags
var (
	outputPath    string
	packageName   string
	configPath    string
	skipNames     []string
	defineFlags   []string
	reportSkipped bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cmacros: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cmacros",
		Short: "cmacros extracts #define macros from C headers and translates them to Go",
		Long: `cmacros parses C header files for #define macro definitions and
translates constant-like macros into Go constant declarations, for use
alongside generated foreign-function bindings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.AddCommand(newExtractCmd(out, errOut))
	rootCmd.AddCommand(newTranslateCmd(out, errOut))
	return rootCmd
}

func newExtractCmd(out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <header-or-directory>",
		Short: "Print the #define macros found in a header file or directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doExtract(args[0], out, errOut)
		},
	}
}

func newTranslateCmd(out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <header>",
		Short: "Translate constant-like macros from a header into Go source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doTranslate(args[0], out, errOut)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write generated source to file instead of stdout")
	cmd.Flags().StringVar(&packageName, "package", "", "Package name for generated source (default: derived from header name)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML policy file with skip/type/prefix overrides")
	cmd.Flags().StringArrayVar(&skipNames, "skip", nil, "Macro name to skip (repeatable)")
	cmd.Flags().StringArrayVarP(&defineFlags, "define", "D", nil, "Additional NAME[=VALUE] define, as if first in the header (repeatable)")
	cmd.Flags().BoolVar(&reportSkipped, "report-skipped", false, "Report skipped macros and reasons on stderr")
	return cmd
}

// doExtract prints every macro found under path in #define form.
// Directories are walked recursively for .h and .hpp files; unreadable
// files are reported and skipped.
func doExtract(path string, out, errOut io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return extractFile(path, out, errOut)
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(errOut, "cmacros: skipping %s: %v\n", p, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(p)
		if ext != ".h" && ext != ".hpp" {
			return nil
		}
		if err := extractFile(p, out, errOut); err != nil {
			fmt.Fprintf(errOut, "cmacros: %s: %v\n", p, err)
		}
		return nil
	})
}

func extractFile(path string, out, errOut io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	defs, diags := extract.Extract(string(content))
	printDiagnostics(path, diags, errOut)
	for _, def := range defs {
		fmt.Fprintln(out, formatDefine(def))
	}
	return nil
}

// formatDefine reconstructs the #define form of a macro.
func formatDefine(def macro.Def) string {
	var sb strings.Builder
	sb.WriteString("#define ")
	sb.WriteString(def.Name)
	if def.Params != nil {
		sb.WriteByte('(')
		sb.WriteString(strings.Join(def.Params, ","))
		sb.WriteByte(')')
	}
	if def.Body != "" {
		sb.WriteByte(' ')
		sb.WriteString(def.Body)
	}
	return sb.String()
}

func doTranslate(path string, out, errOut io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	defs, diags := extract.Extract(string(content))
	printDiagnostics(path, diags, errOut)

	defs, err = mergeDefines(defineFlags, defs)
	if err != nil {
		return err
	}

	policy, cfg, err := buildPolicy(defs)
	if err != nil {
		return err
	}
	results := translate.Translate(defs, policy)

	if reportSkipped {
		for _, r := range results {
			if skip, ok := r.Outcome.(translate.Skip); ok {
				fmt.Fprintf(errOut, "cmacros: skipped %s: %s\n", r.Def.Name, skip.Reason)
			}
		}
	}

	w := out
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outputPath, err)
		}
		defer f.Close()
		w = f
	}

	emitter := translate.NewEmitter(w)
	emitter.WriteHeader(outputPackageName(path, cfg))
	emitter.WriteResults(results)
	return nil
}

// mergeDefines prepends -D NAME[=VALUE] defines to the extracted
// definitions. A missing value defaults to 1, matching compiler -D
// behavior; a header definition of the same name wins, as if the
// flag define preceded the header text.
func mergeDefines(defines []string, defs []macro.Def) ([]macro.Def, error) {
	if len(defines) == 0 {
		return defs, nil
	}
	set := macro.NewSet()
	for _, d := range defines {
		name, value := d, "1"
		if i := strings.IndexByte(d, '='); i >= 0 {
			name, value = d[:i], d[i+1:]
		}
		if !clex.IsIdentifier(name) {
			return nil, fmt.Errorf("invalid macro name in -D %s", d)
		}
		set.Define(macro.Def{Name: name, Body: value})
	}
	for _, d := range defs {
		set.Define(d)
	}
	return set.Defs(), nil
}

// buildPolicy assembles the translation policy from the config file
// and --skip flags.
func buildPolicy(defs []macro.Def) (translate.Policy, *config.File, error) {
	cfg := &config.File{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	cfg.Skip = append(cfg.Skip, skipNames...)
	return cfg.Policy(defs), cfg, nil
}

// outputPackageName picks the generated package name: flag, then
// config, then the header base name sanitized to a Go identifier.
func outputPackageName(headerPath string, cfg *config.File) string {
	if packageName != "" {
		return packageName
	}
	if cfg.Package != "" {
		return cfg.Package
	}
	base := filepath.Base(headerPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var sb strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if sb.Len() > 0 {
				sb.WriteRune(r)
			}
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "macros"
	}
	return strings.ToLower(sb.String())
}

func printDiagnostics(path string, diags []macro.Diagnostic, errOut io.Writer) {
	for _, d := range diags {
		fmt.Fprintf(errOut, "%s:%d: %s\n", path, d.Line, d.Message)
	}
}
