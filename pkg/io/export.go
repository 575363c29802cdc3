package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cariskill/roadmap/pkg/errors"
)

// WriteRecords encodes records as indented JSON or YAML.
// The output can be read back with [ReadRecords].
func WriteRecords(rec Records, w io.Writer, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "records cannot be written as %s", format)
	}
}

// ExportRecords writes records to path, picking the format from its
// extension.
func ExportRecords(rec Records, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteRecords(rec, f, FormatFromPath(path))
}

// WriteCompletion encodes completed node IDs. Text output has one ID per
// line; JSON and YAML output is an array. The output can be read back with
// [ReadCompletion].
func WriteCompletion(ids []string, w io.Writer, format string) error {
	if ids == nil {
		ids = []string{}
	}
	switch format {
	case FormatText:
		for _, id := range ids {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(ids); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ids); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
}

// ExportCompletion writes completed node IDs to path, picking the format
// from its extension.
func ExportCompletion(ids []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCompletion(ids, f, FormatFromPath(path))
}
