// Package git provides the few git operations the installer needs, run
// through exec.CommandRunner.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/multi-agent-kit/internal/exec"
	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

// IsWorkTree reports whether dir is inside a git work tree. A non-zero exit
// from git means "no"; only a failure to run git is an error.
func IsWorkTree(ctx context.Context, cr exec.CommandRunner, dir string) (bool, error) {
	result, err := cr.Run(ctx, "git", []string{"rev-parse", "--is-inside-work-tree"}, exec.RunOpts{Dir: dir})
	if err != nil {
		return false, fmt.Errorf(messages.BootstrapGitRunFailedFmt, "rev-parse", err)
	}
	return result.ExitCode == 0 && strings.TrimSpace(result.Stdout) == "true", nil
}

// Root returns the absolute top-level directory of the work tree containing dir.
func Root(ctx context.Context, cr exec.CommandRunner, dir string) (string, error) {
	result, err := cr.Run(ctx, "git", []string{"rev-parse", "--show-toplevel"}, exec.RunOpts{Dir: dir})
	if err != nil {
		return "", fmt.Errorf(messages.BootstrapGitRunFailedFmt, "rev-parse", err)
	}
	out := strings.TrimSpace(result.Stdout)
	if result.ExitCode != 0 || out == "" || strings.Contains(out, "\n") {
		return "", fmt.Errorf(messages.BootstrapNotRepoFmt, dir)
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}
	return filepath.Clean(out), nil
}

// Init creates a repository in dir.
func Init(ctx context.Context, cr exec.CommandRunner, dir string) error {
	result, err := cr.Run(ctx, "git", []string{"init"}, exec.RunOpts{Dir: dir})
	if err != nil {
		return fmt.Errorf(messages.BootstrapGitRunFailedFmt, "init", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf(messages.BootstrapGitInitFailedFmt, dir, detail(result))
	}
	return nil
}

// Add stages paths, given relative to root.
func Add(ctx context.Context, cr exec.CommandRunner, root string, paths []string) error {
	args := append([]string{"add", "--"}, paths...)
	result, err := cr.Run(ctx, "git", args, exec.RunOpts{Dir: root})
	if err != nil {
		return fmt.Errorf(messages.BootstrapGitRunFailedFmt, "add", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf(messages.BootstrapGitAddFailedFmt, detail(result))
	}
	return nil
}

// CheckIgnore returns the subset of paths, relative to root, that git would
// refuse to add because an ignore rule matches them. Tracked paths are never
// reported.
func CheckIgnore(ctx context.Context, cr exec.CommandRunner, root string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	input := strings.Join(paths, "\x00") + "\x00"
	result, err := cr.Run(ctx, "git", []string{"check-ignore", "-z", "--stdin"}, exec.RunOpts{
		Dir:   root,
		Stdin: strings.NewReader(input),
	})
	if err != nil {
		return nil, fmt.Errorf(messages.BootstrapGitRunFailedFmt, "check-ignore", err)
	}
	switch result.ExitCode {
	case 0:
	case 1:
		return nil, nil
	default:
		return nil, fmt.Errorf(messages.BootstrapGitCheckIgnoreFailedFmt, detail(result))
	}
	var ignored []string
	for _, path := range strings.Split(result.Stdout, "\x00") {
		if path != "" {
			ignored = append(ignored, path)
		}
	}
	return ignored, nil
}

// Commit records the staged changes with message.
func Commit(ctx context.Context, cr exec.CommandRunner, root string, message string) error {
	result, err := cr.Run(ctx, "git", []string{"commit", "-m", message}, exec.RunOpts{Dir: root})
	if err != nil {
		return fmt.Errorf(messages.BootstrapGitRunFailedFmt, "commit", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf(messages.BootstrapGitCommitFailedFmt, detail(result))
	}
	return nil
}

// detail picks the most useful output of a failed git command.
func detail(result exec.CmdResult) string {
	if msg := strings.TrimSpace(result.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(result.Stdout); msg != "" {
		return msg
	}
	return fmt.Sprintf("exit status %d", result.ExitCode)
}
