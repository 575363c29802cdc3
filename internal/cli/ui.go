package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/pipeline"
)

// stdout receives the human-readable status lines. Machine output (JSON,
// snapshots, tables) goes to the command's own writer instead.
var stdout io.Writer = os.Stdout

// Terminal palette. Status colors match the rendered graph's node fills.
var (
	colorAccent = lipgloss.Color(pipeline.ColorCategory)
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color(pipeline.ColorInProgress))

	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	styleCompleted  = nodeStyle(dag.KindTopic, dag.StatusCompleted)
	styleInProgress = nodeStyle(dag.KindTopic, dag.StatusInProgress)
	styleLocked     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconLocked  = "•"
	iconOpen    = "○"
	iconOrigin  = "◆"
)

// nodeStyle colors text like the node's fill in rendered output.
func nodeStyle(k dag.Kind, s dag.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(pipeline.NodeColor(k, s)))
}

// statusStyle returns the style and icon for a node status.
func statusStyle(s dag.Status) (lipgloss.Style, string) {
	switch s {
	case dag.StatusCompleted:
		return styleCompleted, iconSuccess
	case dag.StatusInProgress:
		return styleInProgress, iconOpen
	default:
		return styleLocked, iconLocked
	}
}

// line writes one status line: a styled icon followed by the message.
func line(icon string, msg string) {
	fmt.Fprintln(stdout, icon+" "+msg)
}

func printSuccess(format string, args ...any) {
	line(styleCompleted.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	line(styleIconError.Render(iconError), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	line(StyleWarning.Render(iconWarning), StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	line(styleIconInfo.Render(iconInfo), fmt.Sprintf(format, args...))
}

func printFile(path string) {
	line("  "+StyleDim.Render(iconArrow), StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints graph counts on one line, skipping zeros. The visible
// count only appears when something is folded away.
func printStats(nodes, edges, visible int) {
	var parts []string
	if nodes > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", nodes))
	}
	if edges > 0 {
		parts = append(parts, fmt.Sprintf("%d edges", edges))
	}
	if visible > 0 && visible < nodes {
		parts = append(parts, fmt.Sprintf("%d visible", visible))
	}
	fmt.Fprintln(stdout, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
