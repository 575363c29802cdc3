package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/cariskill/roadmap/pkg/errors"
	"github.com/cariskill/roadmap/pkg/roadmap"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"roadmap.json", FormatJSON},
		{"roadmap.YAML", FormatYAML},
		{"roadmap.yml", FormatYAML},
		{"done.txt", FormatText},
		{"-", FormatJSON},
		{"noext", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestReadPayload_YAML(t *testing.T) {
	in := "roadmap:\n  phases:\n    - skill: X\n"

	got, err := ReadPayload(strings.NewReader(in), FormatYAML)
	if err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}
	if string(got) != `{"roadmap":{"phases":[{"skill":"X"}]}}` {
		t.Errorf("ReadPayload() = %s", got)
	}

	if _, err := ReadPayload(strings.NewReader("a: [b"), FormatYAML); !errors.Is(err, errors.ErrCodeInvalidPayload) {
		t.Errorf("bad yaml error = %v, want INVALID_PAYLOAD", err)
	}
}

func TestReadPayload_Passthrough(t *testing.T) {
	in := "not json at all"
	got, err := ReadPayload(strings.NewReader(in), FormatText)
	if err != nil || string(got) != in {
		t.Errorf("ReadPayload() = %q, %v", got, err)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	rec := Records{
		Subject: "Go",
		Nodes: []roadmap.NodeRecord{
			{ID: "basics", Title: "Basics", Depth: 1, Rationale: "start here"},
			{ID: "generics", Title: "Generics", Depth: 2},
		},
		Edges:     []roadmap.EdgeRecord{{Source: "basics", Target: "generics"}},
		Completed: []string{"basics"},
	}

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteRecords(rec, &buf, format); err != nil {
				t.Fatalf("WriteRecords: %v", err)
			}
			if !strings.Contains(buf.String(), "depth_level") {
				t.Errorf("output missing depth_level:\n%s", buf.String())
			}
			got, err := ReadRecords(&buf, format)
			if err != nil {
				t.Fatalf("ReadRecords: %v", err)
			}
			if got.Subject != "Go" || len(got.Nodes) != 2 || got.Nodes[0].Rationale != "start here" {
				t.Errorf("records = %+v", got)
			}
			if len(got.Edges) != 1 || got.Edges[0].Target != "generics" {
				t.Errorf("edges = %+v", got.Edges)
			}
		})
	}

	if err := WriteRecords(rec, &bytes.Buffer{}, FormatText); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("WriteRecords(text) = %v, want INVALID_FORMAT", err)
	}
}

func TestImportRecords_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.yaml")
	yml := `nodes:
  - node_id: a
    title: A
    depth_level: 1
edges: []
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := ImportRecords(path)
	if err != nil {
		t.Fatalf("ImportRecords: %v", err)
	}
	if len(rec.Nodes) != 1 || rec.Nodes[0].ID != "a" || rec.Nodes[0].Depth != 1 {
		t.Errorf("records = %+v", rec)
	}

	_, err = ImportRecords(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadCompletion(t *testing.T) {
	tests := []struct {
		name   string
		format string
		in     string
		want   []string
	}{
		{"json", FormatJSON, `["a", "b"]`, []string{"a", "b"}},
		{"yaml", FormatYAML, "- a\n- b\n", []string{"a", "b"}},
		{"yaml empty", FormatYAML, "", nil},
		{"text", FormatText, "# done\na\n\n  b  \n", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCompletion(strings.NewReader(tt.in), tt.format)
			if err != nil {
				t.Fatalf("ReadCompletion: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ReadCompletion() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ReadCompletion(strings.NewReader(`{"a": 1}`), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("object input error = %v, want INVALID_INPUT", err)
	}
}

func TestCompletionRoundTrip(t *testing.T) {
	ids := []string{"basics", "generics"}
	for _, format := range []string{FormatJSON, FormatYAML, FormatText} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteCompletion(ids, &buf, format); err != nil {
				t.Fatalf("WriteCompletion: %v", err)
			}
			got, err := ReadCompletion(&buf, format)
			if err != nil {
				t.Fatalf("ReadCompletion: %v", err)
			}
			if !slices.Equal(got, ids) {
				t.Errorf("round trip = %v, want %v", got, ids)
			}
		})
	}
}

func TestExportCompletion_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "done.txt")
	if err := ExportCompletion([]string{"a"}, path); err != nil {
		t.Fatalf("ExportCompletion: %v", err)
	}
	got, err := ImportCompletion(path)
	if err != nil || !slices.Equal(got, []string{"a"}) {
		t.Errorf("ImportCompletion() = %v, %v", got, err)
	}
}
