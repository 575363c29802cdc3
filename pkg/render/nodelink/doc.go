// Package nodelink renders roadmap graphs as node-link diagrams.
//
// # Overview
//
// This is a debugging and export view: it turns a positioned graph into
// Graphviz DOT and renders it in-process. It is not the interactive viewer;
// it exists so a layout can be inspected without one.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Pinned: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: labels include depth, status and metadata
//   - Pinned: nodes are fixed at their computed layout positions, so the
//     picture matches what the layout engine produced
//   - Sizes: per-kind diameters in layout units
//   - Hidden: node IDs removed by the visibility reducer
//
// Without Pinned the diagram uses Graphviz's own layered layout with
// rankdir=BT, which puts the root at the bottom like the layout engine.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering.
package nodelink
