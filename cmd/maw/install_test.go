package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/multi-agent-kit/internal/config"
)

func TestInstallCmd(t *testing.T) {
	h := newHarness(t)
	stdout, _, err := h.run(t, "", "install")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Installed Multi-Agent Workflow Kit files:")
	assert.Contains(t, stdout, "  - .envrc")
	assert.FileExists(t, filepath.Join(h.root, ".gitignore"))
	assert.NoFileExists(t, filepath.Join(h.root, "agents", ".gitignore"))
	assert.Empty(t, h.runner.Calls)

	stdout, _, err = h.run(t, "", "install")
	require.NoError(t, err)
	assert.Contains(t, stdout, "already present")
}

func TestInstallCmdTargetFlag(t *testing.T) {
	h := newHarness(t)
	target := t.TempDir()
	_, _, err := h.run(t, "", "install", "--target", target, "--scratch-guard")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(target, "AGENTS.md"))
	assert.FileExists(t, filepath.Join(target, "agents", ".gitignore"))
	assert.NoFileExists(t, filepath.Join(h.root, "AGENTS.md"))
}

func TestInstallCmdScratchGuardFromConfig(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.root, config.ProjectFileName), []byte("scratch_guard = true\n"), 0o644))
	_, _, err := h.run(t, "", "install")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(h.root, "agents", ".gitignore"))
}

func TestInstallCmdBadConfig(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.root, config.ProjectFileName), []byte("commit = \"sometimes\"\n"), 0o644))
	_, _, err := h.run(t, "", "install")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid commit mode")
}

func TestInstallCmdVerboseLogs(t *testing.T) {
	h := newHarness(t)
	_, stderr, err := h.run(t, "", "install", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote asset")
}

func TestPlanCmd(t *testing.T) {
	h := newHarness(t)
	stdout, _, err := h.run(t, "", "plan")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Planned changes:")
	assert.Contains(t, stdout, "create AGENTS.md")
	assert.Contains(t, stdout, "+++ AGENTS.md")
	assert.NoFileExists(t, filepath.Join(h.root, "AGENTS.md"))

	_, _, err = h.run(t, "", "install")
	require.NoError(t, err)
	stdout, _, err = h.run(t, "", "plan")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No changes planned.")
}

func TestPlanCmdDiffLines(t *testing.T) {
	h := newHarness(t)
	stdout, _, err := h.run(t, "", "plan", "--diff-lines", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "truncated to 3 lines")
}

func TestStatusCmd(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.root, "AGENTS.md"), []byte("x"), 0o644))
	stdout, _, err := h.run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ASSET")
	assert.Contains(t, stdout, ".tmux.conf")
	assert.Contains(t, stdout, "missing")
	assert.Contains(t, stdout, "present")

	_, _, err = h.run(t, "", "install")
	require.NoError(t, err)
	stdout, _, err = h.run(t, "", "status")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "missing")
}
