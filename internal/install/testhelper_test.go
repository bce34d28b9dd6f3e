package install

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// faultSystem is a test helper that allows deterministic error injection for the
// installer System interface without chmod-based permission tricks.
type faultSystem struct {
	base       System
	statErrs   map[string]error
	readErrs   map[string]error
	mkdirErrs  map[string]error
	writeErrs  map[string]error
	chmodErrs  map[string]error
	removeErrs map[string]error
}

func newFaultSystem(base System) *faultSystem {
	return &faultSystem{
		base:       base,
		statErrs:   map[string]error{},
		readErrs:   map[string]error{},
		mkdirErrs:  map[string]error{},
		writeErrs:  map[string]error{},
		chmodErrs:  map[string]error{},
		removeErrs: map[string]error{},
	}
}

func normalizePath(path string) string {
	return filepath.Clean(path)
}

func (f *faultSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := f.statErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.Stat(name)
}

func (f *faultSystem) ReadFile(name string) ([]byte, error) {
	if err, ok := f.readErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.ReadFile(name)
}

func (f *faultSystem) MkdirAll(path string, perm os.FileMode) error {
	if err, ok := f.mkdirErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.MkdirAll(path, perm)
}

func (f *faultSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err, ok := f.writeErrs[normalizePath(filename)]; ok {
		return err
	}
	return f.base.WriteFileAtomic(filename, data, perm)
}

func (f *faultSystem) Chmod(name string, mode os.FileMode) error {
	if err, ok := f.chmodErrs[normalizePath(name)]; ok {
		return err
	}
	return f.base.Chmod(name, mode)
}

func (f *faultSystem) Remove(name string) error {
	if err, ok := f.removeErrs[normalizePath(name)]; ok {
		return err
	}
	return f.base.Remove(name)
}

// testAssets is a small synthetic bundle covering every entry kind.
func testAssets() fstest.MapFS {
	return fstest.MapFS{
		".agents/setup.sh":            {Data: []byte("#!/bin/sh\necho setup\n")},
		".agents/config.yml":          {Data: []byte("profiles: {}\n")},
		".agents/scripts/helper.sh":   {Data: []byte("#!/bin/sh\necho helper\n")},
		".claude/commands/maw.one.md": {Data: []byte("one\n")},
		".codex/prompts/maw-one.md":   {Data: []byte("codex one\n")},
		"AGENTS.md":                   {Data: []byte("# Agents\n")},
		".tmux.conf":                  {Data: []byte("set -g mouse on\n")},
		".envrc":                      {Data: []byte("export MAW=1\n\n")},
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestInstaller(t *testing.T, root string, opts Options) *Installer {
	t.Helper()
	if opts.Assets == nil {
		opts.Assets = testAssets()
	}
	inst, err := New(root, opts)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return inst
}

func contains(paths []string, want string) bool {
	for _, path := range paths {
		if path == want {
			return true
		}
	}
	return false
}
