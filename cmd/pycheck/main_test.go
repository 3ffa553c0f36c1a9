package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pycheck/internal/ast"
	"pycheck/internal/diagfmt"
	"pycheck/internal/driver"
	"pycheck/internal/source"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeUnit saves `x = "a" + 1` as dir/name.pyast.
func writeUnit(t *testing.T, dir, name string) string {
	t.Helper()
	text := "x = \"a\" + 1\n"
	b := ast.NewBuilder(ast.Hints{}, nil)
	file := b.Files.New(source.Span{End: uint32(len(text))})
	sum := b.Exprs.NewBinOp(source.Span{Start: 4, End: 11},
		b.Str(source.Span{Start: 4, End: 7}, "a"), ast.BinaryAdd, b.Int(source.Span{Start: 10, End: 11}, "1"))
	b.PushStmt(file, b.Stmts.NewAssign(source.Span{End: 11},
		[]ast.ExprID{b.Name(source.Span{End: 1}, "x")}, sum))
	path := filepath.Join(dir, name+driver.SnapshotExt)
	if err := driver.WriteSnapshotFile(path, driver.NewSnapshot(name+".py", []byte(text), b, file, nil)); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestCheckShort(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "b")
	writeUnit(t, dir, "a")

	out, err := run(t, "check", "--format", "short", "--ui", "off", dir)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	want := "error SEM3001 a.py:1:5 Operator '+' not supported for types 'Str' and 'Int'\n" +
		"error SEM3001 b.py:1:5 Operator '+' not supported for types 'Str' and 'Int'\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
	sorted, err := run(t, "check", "--format", "short", "--ui", "off", "--sort", dir)
	if !errors.Is(err, errDiagnostics) || sorted != want {
		t.Fatalf("sorted output differs: %q, %v", sorted, err)
	}
}

func TestCheckHonoursOverrides(t *testing.T) {
	dir := t.TempDir()
	unit := writeUnit(t, dir, "a")

	out, err := run(t, "check", "--disable", "binary-operator", "--ui", "off", unit)
	if err != nil {
		t.Fatalf("expected clean run, got %v", err)
	}
	if out != "no issues in 1 unit(s)\n" {
		t.Fatalf("unexpected output %q", out)
	}

	config := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(config, []byte("[check]\ndisable = [\"binary-operator\"]\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := run(t, "check", "--config", config, "--ui", "off", unit); err != nil {
		t.Fatalf("config must disable the category, got %v", err)
	}
	if _, err := run(t, "check", "--enable", "bogus", unit); err == nil || errors.Is(err, errDiagnostics) {
		t.Fatalf("unknown category must fail the run, got %v", err)
	}
}

func TestCheckJSONSemantics(t *testing.T) {
	dir := t.TempDir()
	unit := writeUnit(t, dir, "a")

	out, err := run(t, "check", "--format", "json", "--semantics", "--ui", "off", unit)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	var payload diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if payload.Count != 1 || payload.Diagnostics[0].Operands == nil {
		t.Fatalf("unexpected diagnostics %+v", payload.Diagnostics)
	}
	if len(payload.Semantics) != 1 || len(payload.Semantics[0].Symbols) != 1 {
		t.Fatalf("unexpected semantics %+v", payload.Semantics)
	}
}

func TestCheckRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "check", dir); err == nil || !strings.Contains(err.Error(), "no .pyast files") {
		t.Fatalf("expected empty-input error, got %v", err)
	}
	unit := writeUnit(t, dir, "a")
	if _, err := run(t, "check", "--format", "sarif", unit); err == nil {
		t.Fatalf("unknown format must fail")
	}
	if _, err := run(t, "check", "--ui", "sometimes", unit); err == nil {
		t.Fatalf("unknown ui mode must fail")
	}
	if _, err := run(t, "--color", "purple", "check", unit); err == nil {
		t.Fatalf("unknown color mode must fail")
	}
}

func TestCheckTraceToFile(t *testing.T) {
	dir := t.TempDir()
	unit := writeUnit(t, dir, "a")
	tracePath := filepath.Join(dir, "trace.ndjson")
	if _, err := run(t, "--trace", tracePath, "--trace-level", "detail", "check", "--ui", "off", unit); !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !bytes.Contains(data, []byte(`"sema_check"`)) {
		t.Fatalf("trace lacks the checker span:\n%s", data)
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	out, err := run(t, "init", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.HasPrefix(out, "Initialized pycheck settings in ") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "pycheck.toml")); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	if _, err := run(t, "init", dir); err == nil {
		t.Fatalf("second init must fail")
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := run(t, "version", "--format", "json", "--hash")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "pycheck" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if _, err := run(t, "version", "--format", "xml"); err == nil {
		t.Fatalf("unknown format must fail")
	}
}

func TestModes(t *testing.T) {
	for in, want := range map[string]switchMode{"": modeAuto, "ON": modeOn, "never": modeOff, " off ": modeOff, "always": modeOn} {
		if got, err := parseSwitch("color", in); err != nil || got != want {
			t.Fatalf("parseSwitch(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := parseSwitch("ui", "sometimes"); err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Fatalf("expected --ui error, got %v", err)
	}
	if shouldUseTUI(modeOff, 5) || !shouldUseTUI(modeOn, 1) {
		t.Fatalf("explicit ui modes must win")
	}
	if modeAuto.enabled(func() bool { return false }) || !modeAuto.enabled(func() bool { return true }) {
		t.Fatalf("auto must defer to the probe")
	}
}
