package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/cariskill/roadmap/pkg/graph"
)

// statusCommand creates the status command.
func (c *CLI) statusCommand() *cobra.Command {
	var (
		in         inputFlags
		actionable bool
	)

	cmd := &cobra.Command{
		Use:   "status [payload]",
		Short: "Show every module with its unlock status and progress",
		Long: `Show every module with its unlock status and progress.

A module is completed when its ID is in the completion set, in progress when
all of its prerequisites are completed, and locked otherwise. Modules without
prerequisites are always available.`,
		Example: `  roadmap status generated.json -c basics
  roadmap status --records rows.yaml --completed-file done.txt --actionable`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.execute(cmd, &in, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), statusTable(res.Snapshot, actionable))

			counts := res.Stats.Counts
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
				styleCompleted.Render(fmt.Sprintf("%d completed", counts.Completed)),
				styleInProgress.Render(fmt.Sprintf("%d in progress", counts.InProgress)),
				styleLocked.Render(fmt.Sprintf("%d locked", counts.Locked)))
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&actionable, "actionable", false, "only list modules that can be opened (not locked)")

	return cmd
}

// statusTable renders the non-synthetic nodes of snap ordered by depth.
func statusTable(snap *graph.Snapshot, actionableOnly bool) string {
	nodes := make([]graph.Node, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if n.Kind.IsSynthetic() || (actionableOnly && !n.Actionable) {
			continue
		}
		nodes = append(nodes, n)
	}
	slices.SortStableFunc(nodes, func(a, b graph.Node) int { return cmp.Compare(a.Depth, b.Depth) })

	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		_, icon := statusStyle(n.Status)
		rows = append(rows, []string{icon, n.ID, n.DisplayLabel(), strconv.Itoa(n.Depth), n.Status.String(), n.Percentage})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Title", "Depth", "Status", "Progress").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			style, _ := statusStyle(nodes[row].Status)
			if !nodes[row].Visible {
				style = style.Faint(true)
			}
			return style.Padding(0, 1)
		}).
		Render()
}
