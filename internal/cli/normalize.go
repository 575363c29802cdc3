package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/cariskill/roadmap/pkg/io"
	"github.com/cariskill/roadmap/pkg/normalize"
	"github.com/cariskill/roadmap/pkg/roadmap"
)

// normalizeCommand creates the normalize command.
func (c *CLI) normalizeCommand() *cobra.Command {
	var (
		output  string
		records bool
	)

	cmd := &cobra.Command{
		Use:   "normalize <payload>",
		Short: "Reduce a raw roadmap document to its module list",
		Long: `Reduce a raw roadmap document to its module list.

The payload may be any JSON (or YAML) shape a roadmap generator produced:
a bare array, {"phases": [...]}, {"roadmap": {"learning_path": [...]}} and
so on. Unknown shapes are searched for the first non-empty array. Text that
is not JSON at all becomes a single diagnostic module.

With --records the modules are written as persisted node/edge rows that
'build --records' accepts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readPayloadArg(args[0])
			if err != nil {
				return err
			}

			opts := c.Config.PipelineOptions()
			opts.Payload = data
			opts.Logger = c.Logger
			res := c.newRunner().Normalize(opts)

			w, closeFn, err := outputWriter(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}
			defer closeFn()

			if records {
				return writeModuleRecords(w, res, opts.BuilderOptions(), output)
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&records, "records", false, "write persisted node/edge rows instead of modules")

	return cmd
}

func writeModuleRecords(w io.Writer, res normalize.Result, opts roadmap.Options, output string) error {
	nodes, edges := roadmap.FromModules(res.Modules, opts)
	rec := pkgio.Records{Nodes: nodes, Edges: edges}
	format := pkgio.FormatJSON
	if output != "" {
		format = pkgio.FormatFromPath(output)
	}
	return pkgio.WriteRecords(rec, w, format)
}

func readPayloadArg(arg string) ([]byte, error) {
	if arg == "-" {
		return pkgio.ReadPayload(os.Stdin, pkgio.FormatJSON)
	}
	return pkgio.ImportPayload(arg)
}

// outputWriter returns def for an empty path, otherwise a created file.
func outputWriter(def io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return def, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
