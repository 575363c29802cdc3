package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cariskill/roadmap/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in         inputFlags
		formatsStr string
		output     string
		opts       pipeline.RenderOptions
	)

	cmd := &cobra.Command{
		Use:   "render [payload]",
		Short: "Draw the roadmap as SVG, PNG or DOT",
		Long: `Draw the roadmap as SVG, PNG or DOT.

Nodes are pinned at their computed positions and drawn as circles sized by
kind and colored by status. Locked modules are dashed, collapsed ones have a
double outline, and structural edges from the learner are dotted. Nodes
hidden by a collapsed ancestor are left out.`,
		Example: `  roadmap render generated.json -c basics -f svg,png -o go
  roadmap render --records rows.yaml --free -f dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			res, err := c.execute(cmd, &in, args)
			if err != nil {
				return err
			}
			opts.Sizes = c.Config.Layout.Sizes
			return c.runRender(cmd.Context(), res, formats, opts, basePath(output, args))
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: <input> without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "add depth, status and progress to labels")
	cmd.Flags().BoolVar(&opts.Free, "free", false, "let Graphviz place nodes instead of using computed positions")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, res *pipeline.Result, formats []string, opts pipeline.RenderOptions, base string) error {
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
	spinner.Start()

	artifacts, err := pipeline.Render(ctx, res.Snapshot, formats, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Rendered %d nodes", res.Stats.VisibleCount)
	for _, format := range slices.Sorted(maps.Keys(artifacts)) {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printDiagnostics(res)
	return nil
}

// parseFormats parses the --format flag; empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// basePath returns the output path without extension. Without -o it is the
// input file name minus its extension, or "roadmap" for stdin and records.
func basePath(output string, args []string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	if len(args) > 0 && args[0] != "-" {
		return strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	return appName
}
