// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"errors"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runErr        error
	runStdout     string
	runStderr     string
	gotName       string
	gotArgs       []string
	gotDir        string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(name string, args []string, dir string) (string, string, error) {
	m.gotName = name
	m.gotArgs = args
	m.gotDir = dir
	return m.runStdout, m.runStderr, m.runErr
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name:     "pdflatex preferred",
			exec:     &mockExecutor{availableBins: map[string]bool{"pdflatex": true, "xelatex": true}},
			wantName: "pdflatex",
		},
		{
			name:     "xelatex fallback",
			exec:     &mockExecutor{availableBins: map[string]bool{"xelatex": true}},
			wantName: "xelatex",
		},
		{
			name:     "lualatex last resort",
			exec:     &mockExecutor{availableBins: map[string]bool{"lualatex": true}},
			wantName: "lualatex",
		},
		{
			name:    "nothing installed",
			exec:    &mockExecutor{availableBins: map[string]bool{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := detect(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eng.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", eng.Name(), tt.wantName)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"pdflatex": true}}
	eng, err := detect(exec)
	if err != nil {
		t.Fatal(err)
	}

	pdf, err := eng.Compile("/tmp/build/out.tex", "/tmp/build")
	if err != nil {
		t.Fatal(err)
	}
	if pdf != "/tmp/build/out.pdf" {
		t.Errorf("pdf path = %q", pdf)
	}
	if exec.gotName != "pdflatex" {
		t.Errorf("ran %q, want pdflatex", exec.gotName)
	}
	if exec.gotDir != "/tmp/build" {
		t.Errorf("dir = %q", exec.gotDir)
	}
	joined := strings.Join(exec.gotArgs, " ")
	for _, want := range []string{"-halt-on-error", "-output-directory /tmp/build", "/tmp/build/out.tex"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
}

func TestCompileFailure(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"pdflatex": true},
		runErr:        errors.New("exit status 1"),
		runStdout:     "! Undefined control sequence.\nl.12 \\nosuchmacro\n",
	}
	eng, err := detect(exec)
	if err != nil {
		t.Fatal(err)
	}

	_, err = eng.Compile("/tmp/build/out.tex", "/tmp/build")
	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("error %v is not a CompileError", err)
	}
	if !strings.Contains(err.Error(), "Undefined control sequence") {
		t.Errorf("error %q does not surface the engine output", err)
	}
}
