package testutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conn-castle/multi-agent-kit/internal/exec"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	WriteScript(t, filepath.Join(dir, name), fmt.Sprintf("exit %d\n", exitCode))
}

// WriteScript writes an executable shell script at path with the given body.
// Parent directories are created.
func WriteScript(t *testing.T, path string, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for script: %v", err)
	}
	content := []byte("#!/bin/sh\n" + body)
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// WriteRecordingScript writes a script that appends its working directory and
// arguments as one line to logPath, then exits with exitCode.
func WriteRecordingScript(t *testing.T, path string, logPath string, exitCode int) {
	t.Helper()
	body := fmt.Sprintf("echo \"$(pwd) $*\" >> %q\nexit %d\n", logPath, exitCode)
	WriteScript(t, path, body)
}

// PathWith points PATH at dir only, for the rest of the test.
func PathWith(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir)
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}

// Call is one command observed by FakeRunner.
type Call struct {
	Name     string
	Args     []string
	Dir      string
	Attached bool
	// Stdin holds the input of captured commands.
	Stdin string
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// FakeRunner is an exec.CommandRunner that records calls. Handler decides the
// result; a nil Handler succeeds with empty output.
type FakeRunner struct {
	Calls   []Call
	Handler func(call Call) (exec.CmdResult, error)
}

// Run records the call and delegates to Handler.
func (f *FakeRunner) Run(_ context.Context, name string, args []string, opts exec.RunOpts) (exec.CmdResult, error) {
	call := Call{
		Name:     name,
		Args:     append([]string(nil), args...),
		Dir:      opts.Dir,
		Attached: opts.Stdout != nil,
	}
	if opts.Stdin != nil && !call.Attached {
		data, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return exec.CmdResult{}, err
		}
		call.Stdin = string(data)
	}
	f.Calls = append(f.Calls, call)
	if f.Handler == nil {
		return exec.CmdResult{}, nil
	}
	return f.Handler(call)
}

// Commands returns every recorded call rendered with Call.String.
func (f *FakeRunner) Commands() []string {
	out := make([]string, 0, len(f.Calls))
	for _, call := range f.Calls {
		out = append(out, call.String())
	}
	return out
}
