package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleProgram = `
vars: 3
entry: 0
blocks:
  - pc: 0
    body:
      - op: let
        x: 2
        expr:
          op: constant
          value: 42
    last:
      op: return
      x: 2
`

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	for _, name := range []string{"globaldeadcode", "times"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist", name)
		}
	}
}

func TestRunFileEchoesProgramWithoutTheFlag(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(testFile, []byte(sampleProgram), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	globalDeadcode, showTimes = false, false
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(out.String(), "entry:") {
		t.Errorf("expected re-encoded program on stdout, got %q", out.String())
	}
}

func TestRunFileWritesSiblingOutputFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(testFile, []byte(sampleProgram), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	expected := filepath.Join(tmpDir, "test.dce.yaml")

	globalDeadcode, showTimes = true, false
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--globaldeadcode", testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := os.Stat(expected); os.IsNotExist(err) {
		t.Errorf("expected output file %s to be created", expected)
	}
}

func TestRunFileTimesDumpsPreAndPostIR(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(testFile, []byte(sampleProgram), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	globalDeadcode, showTimes = false, true
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--times", testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := errOut.String()
	if !strings.Contains(got, "pre-rewrite IR") || !strings.Contains(got, "post-rewrite IR") {
		t.Errorf("expected pre/post IR dumps on stderr, got %q", got)
	}
	if !strings.Contains(got, "return x2") {
		t.Errorf("expected printed IR to mention the sample program's return, got %q", got)
	}
}

func TestRunFileFileNotFound(t *testing.T) {
	globalDeadcode, showTimes = false, false
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"nonexistent.yaml"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
}

func TestDceOutputFilename(t *testing.T) {
	tests := []struct{ input, expected string }{
		{"test.yaml", "test.dce.yaml"},
		{"path/to/file.yaml", "path/to/file.dce.yaml"},
		{"no_extension", "no_extension.dce.yaml"},
	}
	for _, tc := range tests {
		if got := dceOutputFilename(tc.input); got != tc.expected {
			t.Errorf("dceOutputFilename(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
