// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine locates and runs the external LaTeX toolchain. The
// typesetting itself (line breaking, pagination, fonts) is entirely the
// engine's business; this package only hands it a .tex source and
// collects the PDF.
package engine

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// binaries are the supported engines, tried in order.
var binaries = []string{"pdflatex", "xelatex", "lualatex"}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, dir string) (stdout, stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, dir string) (string, string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

var defaultExec executor = &osExecutor{}

// CompileError carries the engine's output when a run fails, so the
// caller can surface it and salvage the build directory.
type CompileError struct {
	Binary string
	Stdout string
	Stderr string
	Err    error
}

func (e *CompileError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = lastLines(e.Stdout, 5)
	}
	if msg == "" {
		return fmt.Sprintf("%s failed: %v", e.Binary, e.Err)
	}
	return fmt.Sprintf("%s failed: %v\n%s", e.Binary, e.Err, msg)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Engine is one detected LaTeX binary.
type Engine struct {
	bin  string
	exec executor
}

// Name returns the engine binary name.
func (e *Engine) Name() string { return e.bin }

// Detect finds the first available LaTeX engine on PATH.
func Detect() (*Engine, error) {
	return detect(defaultExec)
}

func detect(exec executor) (*Engine, error) {
	for _, bin := range binaries {
		if _, err := exec.LookPath(bin); err == nil {
			return &Engine{bin: bin, exec: exec}, nil
		}
	}
	return nil, fmt.Errorf("no LaTeX engine found on PATH (tried %s)", strings.Join(binaries, ", "))
}

// Compile runs the engine on texPath with buildDir as the working and
// output directory, and returns the path of the produced PDF. On
// failure it returns a CompileError carrying the engine's output; the
// caller decides what to salvage from buildDir.
func (e *Engine) Compile(texPath, buildDir string) (string, error) {
	args := []string{
		"-interaction=batchmode",
		"-halt-on-error",
		"-output-directory", buildDir,
		texPath,
	}
	stdout, stderr, err := e.exec.Run(e.bin, args, buildDir)
	if err != nil {
		return "", &CompileError{Binary: e.bin, Stdout: stdout, Stderr: stderr, Err: err}
	}

	base := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	return filepath.Join(buildDir, base+".pdf"), nil
}

// lastLines returns up to n trailing non-blank lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
