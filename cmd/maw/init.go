package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/multi-agent-kit/internal/bootstrap"
	"github.com/conn-castle/multi-agent-kit/internal/config"
	"github.com/conn-castle/multi-agent-kit/internal/exec"
	"github.com/conn-castle/multi-agent-kit/internal/install"
	"github.com/conn-castle/multi-agent-kit/internal/messages"
	"github.com/conn-castle/multi-agent-kit/internal/profiles"
)

type initFlags struct {
	installFlags
	prefix    string
	detach    bool
	skipSetup bool
	setupOnly bool
	yes       bool
	noCommit  bool
	noGitInit bool
}

func newInitCmd(state *rootState) *cobra.Command {
	var flags initFlags

	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, state, flags, args)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", messages.InitFlagPrefix)
	cmd.Flags().BoolVar(&flags.detach, "detach", false, messages.InitFlagDetach)
	cmd.Flags().BoolVar(&flags.skipSetup, "skip-setup", false, messages.InitFlagSkipSetup)
	cmd.Flags().BoolVar(&flags.setupOnly, "setup-only", false, messages.InitFlagSetupOnly)
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, messages.InitFlagYes)
	cmd.Flags().BoolVar(&flags.noCommit, "no-commit", false, messages.InitFlagNoCommit)
	cmd.Flags().BoolVar(&flags.noGitInit, "no-git-init", false, messages.InitFlagNoGitInit)
	return cmd
}

func runInit(cmd *cobra.Command, state *rootState, flags initFlags, args []string) error {
	ctx := cmd.Context()
	logger := state.log()
	launch := bootstrap.InitOptions{
		Prefix:    flags.prefix,
		Detach:    flags.detach,
		SkipSetup: flags.skipSetup,
		SetupOnly: flags.setupOnly,
	}
	if launch.SkipSetup && launch.SetupOnly {
		return errors.New(messages.BootstrapSkipAndSetupOnly)
	}
	if err := bootstrap.CheckBinaries(lookPath); err != nil {
		return err
	}

	root, err := resolveTarget(flags.target)
	if err != nil {
		return err
	}
	settings, err := loadSettings(root)
	if err != nil {
		return err
	}
	launch.Profile = settings.Profile
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		launch.Profile = strings.TrimSpace(args[0])
	}
	if err := launch.Validate(); err != nil {
		return err
	}

	runner := newRunner()
	created, err := bootstrap.EnsureRepo(ctx, runner, root, !flags.noGitInit)
	if err != nil {
		return err
	}
	if created {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), messages.InitCreatedRepoFmt, root); err != nil {
			return err
		}
	}

	inst, err := install.New(root, flags.options(state, settings.ScratchGuard))
	if err != nil {
		return err
	}
	missing, err := inst.Missing()
	if err != nil {
		return err
	}
	var written []string
	if len(missing) > 0 || flags.force {
		logger.Debug("installing assets", "missing", strings.Join(missing, ","), "force", flags.force)
		written, err = inst.EnsureAssets()
		if err != nil {
			return err
		}
		if err := printWritten(cmd.OutOrStdout(), root, written); err != nil {
			return err
		}
	}

	if err := maybeCommit(cmd, runner, flags, settings, root, written); err != nil {
		return err
	}

	if !launch.SetupOnly {
		if err := checkProfile(root, launch.Profile); err != nil {
			return err
		}
	}
	stdio := bootstrap.Stdio{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	return bootstrap.Launch(ctx, runner, stdio, root, launch)
}

// maybeCommit commits written paths according to the flags and commit mode.
func maybeCommit(cmd *cobra.Command, runner exec.CommandRunner, flags initFlags, settings config.Settings, root string, written []string) error {
	if len(written) == 0 || flags.noCommit {
		return nil
	}
	mode := settings.Commit
	if flags.yes {
		mode = config.CommitAlways
	}
	commit := false
	switch mode {
	case config.CommitNever:
		return nil
	case config.CommitAlways:
		commit = true
	default:
		var err error
		if isTerminal() {
			commit, err = confirm(messages.InitCommitPrompt)
		} else {
			commit, err = promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), messages.InitCommitPrompt, false)
		}
		if err != nil {
			return err
		}
	}
	if !commit {
		_, _ = color.New(color.FgYellow).Fprint(cmd.ErrOrStderr(), messages.InitCommitSkippedNoPrompt)
		return nil
	}
	committed, err := bootstrap.CommitPaths(cmd.Context(), runner, root, written, settings.CommitMessage)
	if err != nil {
		return err
	}
	if len(committed) == 0 {
		_, err = fmt.Fprint(cmd.OutOrStdout(), messages.InitCommitAllIgnored)
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), messages.InitCommittedFmt, len(committed), settings.CommitMessage)
	return err
}

// checkProfile validates profile against the installed profile file. A missing
// file is left for start-agents.sh to report.
func checkProfile(root string, profile string) error {
	path := filepath.Join(root, ".agents", "config.yml")
	file, err := profiles.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return file.Require(profile)
}
