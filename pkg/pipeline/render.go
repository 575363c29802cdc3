package pipeline

import (
	"context"
	"fmt"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/graph"
	"github.com/cariskill/roadmap/pkg/layout"
	"github.com/cariskill/roadmap/pkg/render/nodelink"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// RenderOptions configures [Render].
type RenderOptions struct {
	// Detailed adds depth, status and metadata to diagram labels.
	Detailed bool
	// Free lets Graphviz place nodes instead of pinning computed positions.
	Free bool
	// Sizes are the per-kind node diameters used for diagrams.
	Sizes layout.Sizes
}

// Render produces one artifact per format from a snapshot: the snapshot JSON
// itself, or a node-link diagram of its visible part.
func Render(ctx context.Context, snap *graph.Snapshot, formats []string, opts RenderOptions) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	var dot string
	for _, format := range formats {
		if format == FormatJSON {
			data, err := graph.MarshalSnapshot(snap)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[format] = data
			continue
		}

		if dot == "" {
			var err error
			if dot, err = SnapshotDOT(snap, opts); err != nil {
				return nil, err
			}
		}

		var (
			data []byte
			err  error
		)
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// SnapshotDOT converts the visible part of a snapshot to Graphviz DOT.
func SnapshotDOT(snap *graph.Snapshot, opts RenderOptions) (string, error) {
	g, err := graph.ToDAG(snap.Graph)
	if err != nil {
		return "", fmt.Errorf("rebuild graph: %w", err)
	}

	hidden := make(map[string]bool)
	for _, n := range snap.Nodes {
		if !n.Visible {
			hidden[n.ID] = true
		}
	}

	sizes := opts.Sizes
	if sizes == (layout.Sizes{}) {
		sizes = layout.DefaultConfig().Sizes
	}
	return nodelink.ToDOT(g, nodelink.Options{
		Detailed: opts.Detailed,
		Pinned:   !opts.Free,
		Hidden:   hidden,
		Sizes: map[dag.Kind]float64{
			dag.KindRoot:     sizes.Root,
			dag.KindCategory: sizes.Category,
			dag.KindTopic:    sizes.Topic,
			dag.KindSkill:    sizes.Skill,
		},
	}), nil
}
