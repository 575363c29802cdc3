package cli

import (
	"github.com/spf13/cobra"

	"github.com/cariskill/roadmap/pkg/errors"
	pkgio "github.com/cariskill/roadmap/pkg/io"
	"github.com/cariskill/roadmap/pkg/pipeline"
)

// inputFlags are the flags shared by every command that runs the pipeline.
type inputFlags struct {
	records       string   // persisted rows file (instead of a payload)
	completedFile string   // completion list file
	completed     []string // completed IDs given inline
	collapsed     []string // collapsed IDs
	subject       string
	learner       string
	sequential    bool
	expandItems   bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.records, "records", "r", "", "persisted node/edge rows (json or yaml) instead of a payload")
	cmd.Flags().StringVar(&f.completedFile, "completed-file", "", "file listing completed node IDs (json, yaml or one per line)")
	cmd.Flags().StringSliceVarP(&f.completed, "completed", "c", nil, "completed node IDs (comma-separated)")
	cmd.Flags().StringSliceVar(&f.collapsed, "collapse", nil, "node IDs to collapse (comma-separated)")
	cmd.Flags().StringVar(&f.subject, "subject", "", "subject label for the topic node")
	cmd.Flags().StringVar(&f.learner, "learner", "", "label for the learner root node")
	cmd.Flags().BoolVar(&f.sequential, "sequential", false, "make each module a prerequisite of the next")
	cmd.Flags().BoolVar(&f.expandItems, "expand-items", false, "add module items as skill nodes")
}

// options assembles pipeline options from the config, the input file and
// the flags, in that order of precedence. payload is the positional
// argument and may be "-" for stdin.
func (c *CLI) options(cmd *cobra.Command, f *inputFlags, payload string) (pipeline.Options, error) {
	opts := c.Config.PipelineOptions()
	opts.Logger = c.Logger

	switch {
	case payload != "" && f.records != "":
		return opts, errors.New(errors.ErrCodeInvalidInput, "give either a payload or --records, not both")
	case payload != "":
		data, err := readPayloadArg(payload)
		if err != nil {
			return opts, err
		}
		opts.Payload = data
	case f.records != "":
		rec, err := pkgio.ImportRecords(f.records)
		if err != nil {
			return opts, err
		}
		opts.Nodes, opts.Edges = rec.Nodes, rec.Edges
		opts.Completed = append(opts.Completed, rec.Completed...)
		if rec.Subject != "" {
			opts.Subject = rec.Subject
		}
	default:
		return opts, errors.New(errors.ErrCodeInvalidInput, "no input: pass a payload file, \"-\" for stdin, or --records")
	}

	if f.completedFile != "" {
		ids, err := pkgio.ImportCompletion(f.completedFile)
		if err != nil {
			return opts, err
		}
		opts.Completed = append(opts.Completed, ids...)
	}
	opts.Completed = append(opts.Completed, f.completed...)
	opts.Collapsed = append(opts.Collapsed, f.collapsed...)

	flags := cmd.Flags()
	if flags.Changed("subject") {
		opts.Subject = f.subject
	}
	if flags.Changed("learner") {
		opts.Learner = f.learner
	}
	if flags.Changed("sequential") {
		opts.SequentialModules = f.sequential
	}
	if flags.Changed("expand-items") {
		opts.ExpandItems = f.expandItems
	}
	return opts, nil
}

// execute builds options and runs the pipeline.
func (c *CLI) execute(cmd *cobra.Command, f *inputFlags, args []string) (*pipeline.Result, error) {
	var payload string
	if len(args) > 0 {
		payload = args[0]
	}
	opts, err := c.options(cmd, f, payload)
	if err != nil {
		return nil, err
	}
	return c.newRunner().Execute(cmd.Context(), opts)
}
