package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	"github.com/msto63/kaleido/pkg/core/config"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return runWith(t, rootCmd.Execute, stdin, args...)
}

func runWith(t *testing.T, execute func() error, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	t.Setenv("HOME", t.TempDir())

	cfgFile, verbose = "", false
	parseFormat, parseStrict = "text", false
	configFormat, configOperators = config.FormatTOML, false
	replPlain = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := execute()
	return stdout.String(), stderr.String(), err
}

func TestParse_Text(t *testing.T) {
	out, _, err := run(t, "extern sin(x); def f(a) sin(a) * 2; f(1)", "parse")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "extern sin(x)\ndef f(a) (sin(a) * 2)\ntoplevel f(1)\n"
	if out != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, out)
	}
}

func TestParse_SyntaxErrorsRecover(t *testing.T) {
	out, errOut, err := run(t, "def 1; 4", "parse")
	if err != nil {
		t.Fatalf("Syntax errors should not fail the run: %v", err)
	}
	if !strings.Contains(errOut, "syntax error:") {
		t.Errorf("Expected a diagnostic on stderr, got %q", errOut)
	}
	if !strings.Contains(out, "toplevel 4") {
		t.Errorf("Expected parsing to continue, got %q", out)
	}

	if _, _, err := run(t, "def 1; 4", "parse", "--strict"); err == nil {
		t.Error("Expected --strict to fail on syntax errors")
	}
}

func TestParse_FatalLexicalError(t *testing.T) {
	_, _, err := run(t, "1 + 1.2.3", "parse")
	if !mdwerror.HasCode(err, mdwerror.CodeLexical) {
		t.Fatalf("Expected CodeLexical, got %v", err)
	}
}

func TestExecute_FatalErrorReportedOnce(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"text output", []string{"parse"}},
		{"json output", []string{"parse", "--format", "json"}},
		{"plain repl", []string{"repl", "--plain"}},
		{"verbose", []string{"--verbose", "parse"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, err := runWith(t, Execute, "1 + 1.2.3", tt.args...)
			if !mdwerror.HasCode(err, mdwerror.CodeLexical) {
				t.Fatalf("Expected CodeLexical, got %v", err)
			}
			if n := strings.Count(errOut, "too many decimal points"); n > 1 {
				t.Errorf("Expected the error at most once on stderr, got %d in %q", n, errOut)
			}
		})
	}

	_, errOut, _ := runWith(t, Execute, "1 + 1.2.3", "parse")
	if n := strings.Count(errOut, "too many decimal points"); n != 1 {
		t.Errorf("Expected exactly one report, got %d in %q", n, errOut)
	}
}

func TestParse_JSON(t *testing.T) {
	out, _, err := run(t, "def id(x) x\nid(", "parse", "--format", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc struct {
		Units []struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"units"`
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Invalid JSON %q: %v", out, err)
	}
	if len(doc.Units) != 1 || doc.Units[0].Name != "id" {
		t.Errorf("Unexpected units %+v", doc.Units)
	}
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Code != string(mdwerror.CodeSyntax) {
		t.Errorf("Unexpected diagnostics %+v", doc.Diagnostics)
	}
}

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fib.ks")
	if err := os.WriteFile(path, []byte("extern fib(n)"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "", "parse", path)
	if err != nil || out != "extern fib(n)\n" {
		t.Errorf("Unexpected result %q %v", out, err)
	}

	_, _, err = run(t, "", "parse", filepath.Join(t.TempDir(), "missing.ks"))
	if !mdwerror.HasCode(err, mdwerror.CodeIO) {
		t.Errorf("Expected CodeIO for a missing file, got %v", err)
	}
}

func TestTokens(t *testing.T) {
	out, _, err := run(t, "def x", "tokens")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "1:1\tDEF\n1:5\tIDENTIFIER(x)\n1:6\tEOF\n"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestREPL_Plain(t *testing.T) {
	out, errOut, err := run(t, "extern f(a)\nf(1)\n", "repl", "--plain")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "Parsed an extern: f(a)") || !strings.Contains(out, "Parsed a top-level expr: f(1)") {
		t.Errorf("Unexpected output %q", out)
	}
	if !strings.Contains(errOut, "ready> ") {
		t.Errorf("Expected the prompt on stderr, got %q", errOut)
	}
}

func TestConfig_Operators(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaleido.toml")
	data := "[parser.precedence]\n\"%\" = 30\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "", "--config", path, "config", "--operators")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "<\t10\n") || !strings.Contains(out, "%\t30\n") {
		t.Errorf("Unexpected operator table %q", out)
	}
}

func TestConfig_MissingFile(t *testing.T) {
	_, _, err := run(t, "", "--config", "/nonexistent/kaleido.toml", "version")
	if !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
		t.Errorf("Expected CodeMissingConfig, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil || !strings.HasPrefix(out, "kaleido ") {
		t.Errorf("Unexpected version output %q %v", out, err)
	}
}
