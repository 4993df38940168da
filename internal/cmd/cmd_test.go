package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/erbsland-dev/elcl-conformance/internal/corpus"
)

// writeSuite creates a small test suite and returns its root directory.
func writeSuite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeCase := func(name, outcomeText string) {
		path := filepath.Join(root, "V1_0", filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("[main]\nvalue: 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		outPath := path[:len(path)-len(corpus.CaseExtension)] + corpus.OutcomeExtension
		if err := os.WriteFile(outPath, []byte(outcomeText), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	writeCase("core/0001-PASS-basic.elcl", "main.value = Integer(1)\n")
	writeCase("core/0002-PASS-text.elcl", "main.value = Text(\"hello\")\n")
	writeCase("core/0003-FAIL-broken.elcl", "FAIL = Syntax\n")
	return root
}

// writeAdapter creates a shell script standing in for a real test adapter.
func writeAdapter(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script adapters require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "testadapter")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// echoAdapter replays the expected outcome file of each case, making every
// test pass.
const echoAdapter = `#!/bin/sh
for last; do :; done
out="${last%.elcl}.out"
case "$last" in
  *FAIL*) cat "$out"; exit 1 ;;
  *) cat "$out"; exit 0 ;;
esac
`

// mismatchAdapter emits a wrong value for the second case.
const mismatchAdapter = `#!/bin/sh
for last; do :; done
out="${last%.elcl}.out"
case "$last" in
  *0002*) echo 'main.value = Integer(999)'; exit 0 ;;
  *FAIL*) cat "$out"; exit 1 ;;
  *) cat "$out"; exit 0 ;;
esac
`

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCmd("test")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunAllPass(t *testing.T) {
	suite := writeSuite(t)
	adapterPath := writeAdapter(t, echoAdapter)

	out, err := runRoot(t, "--tests", suite, adapterPath)
	if err != nil {
		t.Fatalf("Execute() returned error: %v\noutput:\n%s", err, out)
	}
	for _, part := range []string{
		"Erbsland Configuration Language - Conformance Test",
		"Scanning all test cases for tier 'full'...",
		"Running all tests...",
		"Conformance test PASSED",
		"100.00% tests passed (3/3)",
		"Full-Tier Parser Score: 30",
	} {
		if !strings.Contains(out, part) {
			t.Errorf("output missing %q\noutput:\n%s", part, out)
		}
	}
}

func TestRunWithFailures(t *testing.T) {
	suite := writeSuite(t)
	adapterPath := writeAdapter(t, mismatchAdapter)

	out, err := runRoot(t, "--tests", suite, adapterPath)
	if !errors.Is(err, errTestsFailed) {
		t.Fatalf("Execute() error = %v, want errTestsFailed", err)
	}
	for _, part := range []string{
		"Conformance test FAILED",
		"66.67% tests passed (2/3)",
		"Full-Tier Parser Score: 20",
		"Test core/0002-PASS-text.elcl:",
	} {
		if !strings.Contains(out, part) {
			t.Errorf("output missing %q\noutput:\n%s", part, out)
		}
	}
}

func TestRunSilentSuppressesProgress(t *testing.T) {
	suite := writeSuite(t)
	adapterPath := writeAdapter(t, echoAdapter)

	out, err := runRoot(t, "-s", "--tests", suite, adapterPath)
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}
	if strings.Contains(out, "Scanning all test cases") || strings.Contains(out, "Running all tests") {
		t.Errorf("silent mode must suppress progress lines\noutput:\n%s", out)
	}
	if !strings.Contains(out, "Conformance test PASSED") {
		t.Errorf("silent mode must still print the report\noutput:\n%s", out)
	}
}

func TestRunJSONReportToFile(t *testing.T) {
	suite := writeSuite(t)
	adapterPath := writeAdapter(t, mismatchAdapter)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	out, err := runRoot(t, "--tests", suite, "-f", "json", "-o", reportPath, "-t", "minimal", adapterPath)
	if !errors.Is(err, errTestsFailed) {
		t.Fatalf("Execute() error = %v, want errTestsFailed", err)
	}

	// Progress belongs to the console, never to the report file.
	if !strings.Contains(out, "Running all tests...") {
		t.Errorf("console output missing progress\noutput:\n%s", out)
	}
	data, readErr := os.ReadFile(reportPath)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if strings.Contains(string(data), "Running all tests") {
		t.Error("report file must not contain progress lines")
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report file is not valid JSON: %v", err)
	}
	checks := map[string]any{
		"tier":       "minimal",
		"total":      float64(3),
		"passed":     float64(2),
		"percentage": 66.67,
		"score":      float64(20),
	}
	for key, want := range checks {
		if got := decoded[key]; got != want {
			t.Errorf("report field %q = %v, want %v", key, got, want)
		}
	}
}

func TestRunParallelJobs(t *testing.T) {
	suite := writeSuite(t)
	adapterPath := writeAdapter(t, echoAdapter)

	out, err := runRoot(t, "--tests", suite, "--jobs", "4", adapterPath)
	if err != nil {
		t.Fatalf("Execute() returned error: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "100.00% tests passed (3/3)") {
		t.Errorf("parallel run output unexpected:\n%s", out)
	}
}

func TestRunSelfTest(t *testing.T) {
	suite := writeSuite(t)

	// This adapter accepts every document, so the self-test passes.
	adapterPath := writeAdapter(t, `#!/bin/sh
echo 'main.value = Integer(123)'
exit 0
`)
	out, err := runRoot(t, "--self-test", "--tests", suite, "-t", "minimal", adapterPath)
	// The suite contains a FAIL case this adapter cannot reject.
	if !errors.Is(err, errTestsFailed) {
		t.Fatalf("Execute() error = %v, want errTestsFailed\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Running the adapter self-test...") {
		t.Errorf("output missing self-test progress\noutput:\n%s", out)
	}
}

func TestRunValidationErrors(t *testing.T) {
	suite := writeSuite(t)
	adapterPath := writeAdapter(t, echoAdapter)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unsupported version", []string{"-l", "2.0", "--tests", suite, adapterPath}, "unsupported language version"},
		{"invalid tier", []string{"-t", "huge", "--tests", suite, adapterPath}, "invalid tier"},
		{"invalid format", []string{"-f", "xml", "--tests", suite, adapterPath}, "invalid format"},
		{"missing adapter", []string{"--tests", suite, filepath.Join(suite, "no-such-adapter")}, "test adapter executable"},
		{"missing suite", []string{"--tests", filepath.Join(suite, "nowhere"), adapterPath}, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() should return an error")
			}
			if errors.Is(err, errTestsFailed) {
				t.Fatal("validation errors must not count as test failures")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want to contain %q", err, tt.want)
			}
		})
	}
}

func TestRunUsesConfigFileDefaults(t *testing.T) {
	suite := writeSuite(t)
	adapterPath := writeAdapter(t, echoAdapter)

	configPath := filepath.Join(t.TempDir(), "conformance.yaml")
	content := "tier: minimal\ntests: " + suite + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runRoot(t, "--config", configPath, adapterPath)
	if err != nil {
		t.Fatalf("Execute() returned error: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Scanning all test cases for tier 'minimal'...") {
		t.Errorf("config tier was not applied\noutput:\n%s", out)
	}
	if !strings.Contains(out, "Minimal-Tier Parser Score: 30") {
		t.Errorf("output missing minimal tier score\noutput:\n%s", out)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	suite := writeSuite(t)
	adapterPath := writeAdapter(t, echoAdapter)

	configPath := filepath.Join(t.TempDir(), "conformance.yaml")
	content := "tier: minimal\ntests: " + suite + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runRoot(t, "--config", configPath, "-t", "full", adapterPath)
	if err != nil {
		t.Fatalf("Execute() returned error: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Scanning all test cases for tier 'full'...") {
		t.Errorf("explicit flag should win over the config file\noutput:\n%s", out)
	}
}
