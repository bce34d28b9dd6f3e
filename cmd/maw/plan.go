package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/multi-agent-kit/internal/install"
	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

func newPlanCmd(state *rootState) *cobra.Command {
	var flags installFlags
	var diffLines int

	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
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
			changes, err := install.Plan(root, install.PlanOptions{
				Options:      flags.options(state, settings.ScratchGuard),
				DiffMaxLines: diffLines,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(changes) == 0 {
				_, err := fmt.Fprintln(out, messages.InstallPlanEmpty)
				return err
			}
			if _, err := fmt.Fprintln(out, messages.InstallPlanHeader); err != nil {
				return err
			}
			for _, change := range changes {
				if _, err := fmt.Fprintf(out, messages.InstallPlanLineFmt, change.Action, change.Path); err != nil {
					return err
				}
			}
			for _, change := range changes {
				if change.UnifiedDiff == "" {
					continue
				}
				if _, err := fmt.Fprintf(out, "\n%s", change.UnifiedDiff); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&diffLines, "diff-lines", install.DefaultDiffMaxLines, messages.PlanFlagDiffLine)
	return cmd
}
