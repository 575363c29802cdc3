package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cariskill/roadmap/pkg/graph"
	"github.com/cariskill/roadmap/pkg/pipeline"
)

// buildCommand creates the build command, which runs the whole pipeline.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		in     inputFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "build [payload]",
		Short: "Build the roadmap graph and write its snapshot as JSON",
		Long: `Build the roadmap graph and write its snapshot as JSON.

The input is either a raw payload (normalized first) or persisted rows given
with --records. The snapshot carries every node with its depth, status,
progress, position and visibility, the visible edges, the pan bounds, the
reveal order and any diagnostics.`,
		Example: `  roadmap build generated.json -c basics,syntax -o go.snapshot.json
  roadmap build --records rows.yaml --collapse generics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			res, err := c.execute(cmd, &in, args)
			if err != nil {
				return err
			}

			if output == "" {
				return graph.WriteSnapshot(res.Snapshot, cmd.OutOrStdout())
			}
			if err := graph.WriteSnapshotFile(res.Snapshot, output); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			prog.done("Built snapshot", "nodes", res.Stats.NodeCount, "edges", res.Stats.EdgeCount)

			printSuccess("Snapshot written")
			printFile(output)
			printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.VisibleCount)
			printDiagnostics(res)
			printNewline()
			printNextStep("Render", "roadmap render "+inputHint(args, &in))
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// printDiagnostics prints one warning line per builder diagnostic.
func printDiagnostics(res *pipeline.Result) {
	for _, w := range res.Diagnostics.Warnings() {
		printWarning("%s", w)
	}
	if res.Normalized != nil && res.Normalized.Ambiguous {
		printWarning("modules taken from %s; other candidates: %v", res.Normalized.Path, res.Normalized.Alternatives)
	}
}

func inputHint(args []string, in *inputFlags) string {
	if len(args) > 0 {
		return args[0]
	}
	return "--records " + in.records
}
