package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/cariskill/roadmap/pkg/dag"
)

// pointsPerInch converts layout units to Graphviz inches.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds depth, status and metadata lines to node labels.
	// When false, only the label and progress are shown.
	Detailed bool

	// Pinned fixes every node at its layout position (neato with pos="x,y!").
	// When false, Graphviz lays the graph out itself bottom to top.
	Pinned bool

	// Sizes maps a node kind to its diameter in layout units. Kinds absent
	// from the map use Graphviz defaults.
	Sizes map[dag.Kind]float64

	// Hidden lists node IDs to leave out, together with their edges.
	Hidden map[string]bool
}

// ToDOT converts a roadmap graph to Graphviz DOT. Nodes are circles filled
// with their color; locked nodes get a dashed outline and synthetic edges
// are drawn dotted. The result can be rendered with [RenderSVG] or
// [RenderPNG].
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  notranslate=true;\n")
	} else {
		buf.WriteString("  rankdir=BT;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, fixedsize=false];\n")
	buf.WriteString("  edge [arrowsize=0.6, color=\"#6b7280\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		if opts.Hidden[n.ID] {
			continue
		}
		attrs := fmtAttrs(*n, fmtLabel(*n, opts.Detailed), opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.Hidden[e.From] || opts.Hidden[e.To] {
			continue
		}
		if e.Synthetic {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if n.Percentage != "" {
		label += "\n" + n.Percentage
	}
	if !detailed {
		return label
	}

	parts := []string{
		fmt.Sprintf("depth: %d", n.Depth),
		fmt.Sprintf("status: %s", n.Status),
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n dag.Node, label string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color))
	}
	if size, ok := opts.Sizes[n.Kind]; ok && size > 0 {
		attrs = append(attrs, fmt.Sprintf("width=%s", ftoa(size/pointsPerInch)))
	}
	if opts.Pinned {
		// DOT's y axis points up, layout's points down.
		pos := fmt.Sprintf("%s,%s!", ftoa(n.Position.X/pointsPerInch), ftoa(-n.Position.Y/pointsPerInch))
		attrs = append(attrs, fmt.Sprintf("pos=%q", pos))
	}
	if n.Status == dag.StatusLocked && !n.Kind.IsSynthetic() {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	if n.Collapsed {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 3, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
