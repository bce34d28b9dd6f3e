package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/conn-castle/multi-agent-kit/internal/catalog"
	"github.com/conn-castle/multi-agent-kit/internal/install"
	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	presentStyle = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "#1E8449", Dark: "#2ECC71"})
	missingStyle = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "#B03A2E", Dark: "#E74C3C"})
)

func newStatusCmd(_ *rootState) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveTarget(target)
			if err != nil {
				return err
			}
			missing, err := install.MissingAssets(root)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderStatus(catalog.Entries(), missing))
			return err
		},
	}
	cmd.Flags().StringVar(&target, "target", "", messages.RootFlagTarget)
	return cmd
}

// renderStatus draws one row per catalog entry.
func renderStatus(entries []catalog.Entry, missing []string) string {
	absent := make(map[string]struct{}, len(missing))
	for _, name := range missing {
		absent[name] = struct{}{}
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		status := messages.StatusPresent
		if _, ok := absent[entry.Name]; ok {
			status = messages.StatusMissing
		}
		rows = append(rows, []string{entry.Name, string(entry.Kind), status})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(messages.StatusHeadName, messages.StatusHeadKind, messages.StatusHeadStat).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(rows) {
				if rows[row][2] == messages.StatusMissing {
					return missingStyle
				}
				return presentStyle
			}
			return cellStyle
		})
	return t.Render()
}
