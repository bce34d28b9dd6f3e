package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conn-castle/multi-agent-kit/internal/install"
	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

// installFlags are shared by init, install, and plan.
type installFlags struct {
	target       string
	force        bool
	scratchGuard bool
}

func (f *installFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.target, "target", "", messages.RootFlagTarget)
	cmd.Flags().BoolVar(&f.force, "force", false, messages.InitFlagForce)
	cmd.Flags().BoolVar(&f.scratchGuard, "scratch-guard", false, messages.InitFlagScratchGuard)
}

// options resolves installer options; the scratch guard is on when the flag or
// the config asks for it.
func (f *installFlags) options(state *rootState, configGuard bool) install.Options {
	return install.Options{
		Force:              f.force,
		CreateScratchGuard: f.scratchGuard || configGuard,
		Assets:             bundled(),
		Logger:             state.log(),
	}
}

func newInstallCmd(state *rootState) *cobra.Command {
	var flags installFlags

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveTarget(flags.target)
			if err != nil {
				return err
			}
			settings, err := loadSettings(root)
			if err != nil {
				return err
			}
			inst, err := install.New(root, flags.options(state, settings.ScratchGuard))
			if err != nil {
				return err
			}
			written, err := inst.EnsureAssets()
			if err != nil {
				return err
			}
			return printWritten(cmd.OutOrStdout(), root, written)
		},
	}
	flags.register(cmd)
	return cmd
}

// printWritten lists written paths relative to root.
func printWritten(out io.Writer, root string, written []string) error {
	if len(written) == 0 {
		_, err := fmt.Fprintln(out, messages.InstallNothingToDo)
		return err
	}
	if _, err := fmt.Fprintln(out, messages.InstallWrittenHeader); err != nil {
		return err
	}
	for _, path := range written {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if _, err := fmt.Fprintf(out, messages.InstallPathLineFmt, filepath.ToSlash(rel)); err != nil {
			return err
		}
	}
	return nil
}
