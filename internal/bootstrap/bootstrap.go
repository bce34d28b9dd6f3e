// Package bootstrap checks the host tools, prepares the repository, and hands
// off to the installed shell scripts.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"

	"github.com/conn-castle/multi-agent-kit/internal/exec"
	"github.com/conn-castle/multi-agent-kit/internal/git"
	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

// RequiredBinaries are the commands the installed scripts depend on.
var RequiredBinaries = []string{"git", "tmux", "yq"}

// LookPathFunc resolves a command name on PATH.
type LookPathFunc func(file string) (string, error)

// CheckBinaries reports every missing required command in a single error.
// A nil lookPath uses os/exec.LookPath.
func CheckBinaries(lookPath LookPathFunc) error {
	if lookPath == nil {
		lookPath = osexec.LookPath
	}
	var missing []string
	for _, name := range RequiredBinaries {
		if _, err := lookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf(messages.BootstrapMissingBinariesFmt, strings.Join(missing, ", "))
	}
	return nil
}

// EnsureRepo makes sure dir is inside a git work tree, running git init when
// allowed. It reports whether a repository was created.
func EnsureRepo(ctx context.Context, cr exec.CommandRunner, dir string, initIfMissing bool) (bool, error) {
	inside, err := git.IsWorkTree(ctx, cr, dir)
	if err != nil {
		return false, err
	}
	if inside {
		return false, nil
	}
	if !initIfMissing {
		return false, fmt.Errorf(messages.BootstrapNotRepoFmt, dir)
	}
	if err := git.Init(ctx, cr, dir); err != nil {
		return false, err
	}
	return true, nil
}

// CommitPaths stages paths and commits them with message, skipping paths git
// ignores. Paths may be absolute or relative to root but must stay inside it.
// It returns the committed paths, slash-separated and relative to root; when
// none remain nothing is run.
func CommitPaths(ctx context.Context, cr exec.CommandRunner, root string, paths []string, message string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel := p
		if filepath.IsAbs(p) {
			var err error
			rel, err = filepath.Rel(root, p)
			if err != nil {
				return nil, fmt.Errorf(messages.BootstrapRelPathFailedFmt, p, root, err)
			}
		}
		rel = filepath.Clean(rel)
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf(messages.BootstrapCommitOutsideRepoFmt, p, root)
		}
		rels = append(rels, filepath.ToSlash(rel))
	}

	ignored, err := git.CheckIgnore(ctx, cr, root, rels)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]struct{}, len(ignored))
	for _, path := range ignored {
		skip[path] = struct{}{}
	}
	var staged []string
	for _, rel := range rels {
		if _, ok := skip[rel]; !ok {
			staged = append(staged, rel)
		}
	}
	if len(staged) == 0 {
		return nil, nil
	}

	if err := git.Add(ctx, cr, root, staged); err != nil {
		return nil, err
	}
	if err := git.Commit(ctx, cr, root, message); err != nil {
		return nil, err
	}
	return staged, nil
}

// Stdio are the streams handed to scripts.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStdio returns the process streams.
func OSStdio() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// RunScript runs `bash script args...` from the script's directory with the
// given streams attached. A non-zero exit is an error naming the command.
func RunScript(ctx context.Context, cr exec.CommandRunner, stdio Stdio, script string, args ...string) error {
	if _, err := os.Stat(script); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(messages.BootstrapScriptNotFoundFmt, script)
		}
		return fmt.Errorf(messages.BootstrapScriptRunFailedFmt, script, err)
	}
	out := stdio.Out
	if out == nil {
		out = io.Discard
	}
	errOut := stdio.Err
	if errOut == nil {
		errOut = io.Discard
	}
	result, err := cr.Run(ctx, "bash", append([]string{script}, args...), exec.RunOpts{
		Dir:    filepath.Dir(script),
		Stdin:  stdio.In,
		Stdout: out,
		Stderr: errOut,
	})
	if err != nil {
		return fmt.Errorf(messages.BootstrapScriptRunFailedFmt, script, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf(messages.BootstrapScriptFailedFmt, strings.Join(append([]string{script}, args...), " "))
	}
	return nil
}

// InitOptions selects what Launch does after the assets are in place.
type InitOptions struct {
	Profile   string
	Prefix    string
	Detach    bool
	SkipSetup bool
	SetupOnly bool
}

// Validate rejects contradictory combinations.
func (o InitOptions) Validate() error {
	if o.SkipSetup && o.SetupOnly {
		return errors.New(messages.BootstrapSkipAndSetupOnly)
	}
	if !o.SetupOnly && strings.TrimSpace(o.Profile) == "" {
		return errors.New(messages.BootstrapProfileRequired)
	}
	return nil
}

// StartArgs are the arguments passed to start-agents.sh.
func (o InitOptions) StartArgs() []string {
	args := []string{o.Profile}
	if o.Prefix != "" {
		args = append(args, "--prefix", o.Prefix)
	}
	if o.Detach {
		args = append(args, "--detach")
	}
	return args
}

// SetupScript and StartScript locate the installed scripts under root.
func SetupScript(root string) string {
	return filepath.Join(root, ".agents", "setup.sh")
}

func StartScript(root string) string {
	return filepath.Join(root, ".agents", "start-agents.sh")
}

// Launch runs setup.sh unless skipped, then start-agents.sh unless only setup
// was requested.
func Launch(ctx context.Context, cr exec.CommandRunner, stdio Stdio, root string, opts InitOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if !opts.SkipSetup {
		if err := RunScript(ctx, cr, stdio, SetupScript(root)); err != nil {
			return err
		}
		if opts.SetupOnly {
			return nil
		}
	}
	return RunScript(ctx, cr, stdio, StartScript(root), opts.StartArgs()...)
}
