package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/multi-agent-kit/internal/config"
	"github.com/conn-castle/multi-agent-kit/internal/exec"
	"github.com/conn-castle/multi-agent-kit/internal/testutil"
)

func TestInitInstallsCommitsAndLaunches(t *testing.T) {
	h := newHarness(t)
	stdout, _, err := h.run(t, "", "init", "--yes")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Installed Multi-Agent Workflow Kit files:")
	assert.Contains(t, stdout, "  - .agents/setup.sh")
	assert.FileExists(t, filepath.Join(h.root, ".agents", "start-agents.sh"))

	commands := h.runner.Commands()
	require.Len(t, commands, 6)
	assert.Equal(t, "git rev-parse --is-inside-work-tree", commands[0])
	assert.Equal(t, "git check-ignore -z --stdin", commands[1])
	assert.Equal(t, "git add -- .gitignore .tmux.conf AGENTS.md", sortedAdd(commands[2]))
	assert.Equal(t, "git commit -m "+config.DefaultCommitMessage, commands[3])
	assert.Equal(t, "bash "+filepath.Join(h.root, ".agents", "setup.sh"), commands[4])
	assert.Equal(t, "bash "+filepath.Join(h.root, ".agents", "start-agents.sh")+" profile1", commands[5])
	assert.Contains(t, stdout, "Committed 3 file(s)")
}

// sortedAdd sorts the paths of a git add command line.
func sortedAdd(command string) string {
	prefix := "git add -- "
	if !strings.HasPrefix(command, prefix) {
		return command
	}
	paths := strings.Fields(strings.TrimPrefix(command, prefix))
	sort.Strings(paths)
	return prefix + strings.Join(paths, " ")
}

func TestInitSkipsCommitWhenEverythingIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.runner.Handler = func(call testutil.Call) (exec.CmdResult, error) {
		if call.Args[0] == "rev-parse" {
			return exec.CmdResult{Stdout: "true\n"}, nil
		}
		if call.Args[0] == "check-ignore" {
			return exec.CmdResult{Stdout: call.Stdin}, nil
		}
		return exec.CmdResult{}, nil
	}
	stdout, _, err := h.run(t, "", "init", "--yes", "--skip-setup")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Nothing to commit")
	assert.Empty(t, h.commands("git add"))
	assert.Empty(t, h.commands("git commit"))
}

func TestInitSkipsInstallWhenPresent(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "init", "--yes")
	require.NoError(t, err)
	h.runner.Calls = nil

	stdout, _, err := h.run(t, "", "init", "profile2", "--prefix", "x", "--detach", "--yes")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Installed")
	assert.Empty(t, h.commands("git add"))
	assert.Equal(t, []string{
		"bash " + filepath.Join(h.root, ".agents", "start-agents.sh") + " profile2 --prefix x --detach",
	}, h.commands("bash "+filepath.Join(h.root, ".agents", "start-agents.sh")))
}

func TestInitForceReinstalls(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "init", "--no-commit")
	require.NoError(t, err)
	guide := filepath.Join(h.root, "AGENTS.md")
	require.NoError(t, os.WriteFile(guide, []byte("mine\n"), 0o644))

	stdout, _, err := h.run(t, "", "init", "--no-commit", "--force", "--skip-setup")
	require.NoError(t, err)
	assert.Contains(t, stdout, "  - AGENTS.md")
	data, err := os.ReadFile(guide)
	require.NoError(t, err)
	assert.NotEqual(t, "mine\n", string(data))
}

func TestInitCommitModes(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		config     string
		stdin      string
		wantCommit bool
		wantWarn   bool
	}{
		{"no-commit flag", []string{"--no-commit"}, "", "", false, false},
		{"config never", nil, "commit = \"never\"\n", "", false, false},
		{"config always", nil, "commit = \"always\"\n", "", true, false},
		{"yes overrides never", []string{"--yes"}, "commit = \"never\"\n", "", true, false},
		{"ask answered yes", nil, "", "y\n", true, false},
		{"ask answered no", nil, "", "n\n", false, true},
		{"ask without input", nil, "", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.config != "" {
				require.NoError(t, os.WriteFile(filepath.Join(h.root, config.ProjectFileName), []byte(tt.config), 0o644))
			}
			_, stderr, err := h.run(t, tt.stdin, append([]string{"init", "--skip-setup"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommit, len(h.commands("git commit")) == 1)
			assert.Equal(t, tt.wantWarn, strings.Contains(stderr, "were not committed"))
		})
	}
}

func TestInitInteractiveUsesConfirm(t *testing.T) {
	h := newHarness(t)
	isTerminal = func() bool { return true }
	var asked string
	confirm = func(title string) (bool, error) {
		asked = title
		return true, nil
	}
	_, _, err := h.run(t, "", "init", "--skip-setup")
	require.NoError(t, err)
	assert.NotEmpty(t, asked)
	assert.Len(t, h.commands("git commit"), 1)
}

func TestInitConfirmAbortCancels(t *testing.T) {
	h := newHarness(t)
	isTerminal = func() bool { return true }
	confirm = func(string) (bool, error) { return false, errors.New("aborted") }
	_, _, err := h.run(t, "", "init", "--skip-setup")
	require.Error(t, err)
	assert.Empty(t, h.commands("bash"))
}

func TestInitProfileFromConfigAndEnv(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.root, config.ProjectFileName), []byte("profile = \"profile2\"\n"), 0o644))
	_, _, err := h.run(t, "", "init", "--no-commit", "--skip-setup")
	require.NoError(t, err)
	start := "bash " + filepath.Join(h.root, ".agents", "start-agents.sh")
	assert.Equal(t, []string{start + " profile2"}, h.commands(start))

	h.runner.Calls = nil
	getenv = func(key string) string {
		if key == config.EnvProfile {
			return "profile1"
		}
		return ""
	}
	_, _, err = h.run(t, "", "init", "--skip-setup")
	require.NoError(t, err)
	assert.Equal(t, []string{start + " profile1"}, h.commands(start))
}

func TestInitUnknownProfile(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "init", "nope", "--no-commit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown layout profile "nope"`)
	assert.Contains(t, err.Error(), "profile1, profile2")
	assert.Empty(t, h.commands("bash"))
}

func TestInitSetupOnly(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "init", "nope", "--no-commit", "--setup-only")
	require.NoError(t, err)
	assert.Equal(t, []string{"bash " + filepath.Join(h.root, ".agents", "setup.sh")}, h.commands("bash"))
}

func TestInitRejectsSkipAndSetupOnly(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "init", "--skip-setup", "--setup-only")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--setup-only")
	assert.Empty(t, h.runner.Calls)
	assert.NoFileExists(t, filepath.Join(h.root, "AGENTS.md"))
}

func TestInitMissingBinaries(t *testing.T) {
	h := newHarness(t)
	lookPath = func(name string) (string, error) {
		if name == "git" {
			return "/usr/bin/git", nil
		}
		return "", errors.New("not found")
	}
	_, _, err := h.run(t, "", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tmux, yq")
	assert.Empty(t, h.runner.Calls)
}

func TestInitOutsideRepository(t *testing.T) {
	h := newHarness(t)
	h.runner.Handler = func(call testutil.Call) (exec.CmdResult, error) {
		if call.Name == "git" && call.Args[0] == "rev-parse" {
			return exec.CmdResult{ExitCode: 128}, nil
		}
		return exec.CmdResult{}, nil
	}

	_, _, err := h.run(t, "", "init", "--no-git-init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not inside a git repository")

	h.runner.Calls = nil
	stdout, _, err := h.run(t, "", "init", "--no-commit", "--skip-setup")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Initialized git repository")
	assert.Len(t, h.commands("git init"), 1)
}

func TestInitScriptFailure(t *testing.T) {
	h := newHarness(t)
	h.runner.Handler = func(call testutil.Call) (exec.CmdResult, error) {
		switch {
		case call.Name == "git" && call.Args[0] == "rev-parse":
			return exec.CmdResult{Stdout: "true\n"}, nil
		case call.Name == "bash":
			return exec.CmdResult{ExitCode: 1}, nil
		}
		return exec.CmdResult{}, nil
	}
	_, _, err := h.run(t, "", "init", "--no-commit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
	assert.Len(t, h.commands("bash"), 1)
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{"yes", "y\n", false, true, false},
		{"no", "no\n", true, false, false},
		{"default yes", "\n", true, true, false},
		{"default no", "\n", false, false, false},
		{"eof", "", true, false, false},
		{"retry", "maybe\nyes\n", false, true, false},
		{"invalid at eof", "maybe", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			got, err := promptYesNo(strings.NewReader(tt.input), &out, "Proceed?", tt.defaultYes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Proceed?")
		})
	}
}
