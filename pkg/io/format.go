package io

import (
	"path/filepath"
	"strings"
)

// File formats recognized by extension.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// FormatFromPath guesses a file format from its extension. Unknown
// extensions (and "-" for stdin) are treated as JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt", ".md":
		return FormatText
	default:
		return FormatJSON
	}
}
