package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// executeCommand runs a fresh command tree with the given args and captures
// stdout and stderr.
func executeCommand(args ...string) (stdout, stderr string, err error) {
	root := newRootCmd()
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

// writeTestFile creates a temporary file with the given content and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestEvalDefault(t *testing.T) {
	stdout, _, err := executeCommand("eval", "--given", "x=3")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "((2 + x) * 4) = 20\n" {
		t.Errorf("wrong output: %q", stdout)
	}
}

func TestEvalSamples(t *testing.T) {
	stdout, _, err := executeCommand("eval", "--given", "x = 3", "--given", "y=-1", "linear", "square", "shared")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	want := strings.Join([]string{
		"((2 + x) * 4) = 20",
		"((x * x) + 1000) = 1009",
		"((x + y) * (x + y)) = 4",
		"",
	}, "\n")
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("wrong output (-want +got):\n%s", diff)
	}
}

func TestEvalNoEcho(t *testing.T) {
	stdout, _, err := executeCommand("eval", "--echo=false", "--given", "x=0")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "8\n" {
		t.Errorf("wrong output: %q", stdout)
	}
}

func TestEvalVarsFile(t *testing.T) {
	path := writeTestFile(t, "vars.yaml", "x: 10\ny: 2\n")
	stdout, _, err := executeCommand("eval", "--vars", path, "--given", "y=5", "linear", "shared")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	want := "((2 + x) * 4) = 48\n((x + y) * (x + y)) = 225\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("wrong output (-want +got):\n%s", diff)
	}
}

func TestEvalUnbound(t *testing.T) {
	stdout, _, err := executeCommand("eval", "--given", "x=1", "linear", "shared")
	if code := exitCode(err); code != exitEval {
		t.Fatalf("want exit code %d, got %d (%v)", exitEval, code, err)
	}
	want := "((2 + x) * 4) = 12\n((x + y) * (x + y)) : undefined variable: \"y\"\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("wrong output (-want +got):\n%s", diff)
	}
}

func TestEvalBadInput(t *testing.T) {
	badYAML := writeTestFile(t, "bad.yaml", "x: [1, 2]\n")
	cases := []struct {
		name string
		args []string
	}{
		{"no-equals", []string{"eval", "--given", "x"}},
		{"no-name", []string{"eval", "--given", "=3"}},
		{"not-int", []string{"eval", "--given", "x=3.5"}},
		{"missing-file", []string{"eval", "--vars", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"bad-yaml", []string{"eval", "--vars", badYAML}},
		{"unknown-sample", []string{"eval", "--given", "x=1", "cubic"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := executeCommand(c.args...)
			if code := exitCode(err); code != exitUsage {
				t.Errorf("want exit code %d, got %d (%v)", exitUsage, code, err)
			}
		})
	}
}

func TestEvalList(t *testing.T) {
	stdout, _, err := executeCommand("eval", "--list")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	want := "linear\tx\nsquare\tx\nshared\tx y\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("wrong output (-want +got):\n%s", diff)
	}
}

func TestEvalVerboseLogs(t *testing.T) {
	_, stderr, err := executeCommand("eval", "--verbose", "--given", "x=3")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(stderr, "factory created node") {
		t.Errorf("expected debug logs, got: %q", stderr)
	}
	_, stderr, _ = executeCommand("eval", "--given", "x=3")
	if strings.Contains(stderr, "level=DEBUG") {
		t.Errorf("debug logs without --verbose: %q", stderr)
	}
}

func TestStats(t *testing.T) {
	stdout, _, err := executeCommand("stats")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	for _, want := range []string{
		"trees: 3\n",
		"predefined constants: 262\n",
		"cached constants: 1\n",
		"cached variables: 2\n",
		"exprtree.factory.hits: constant=2 variable=2\n",
		"exprtree.factory.misses: constant=1 variable=2\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := executeCommand("--version")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "exprtree version dev\n" {
		t.Errorf("wrong version output: %q", stdout)
	}
}
