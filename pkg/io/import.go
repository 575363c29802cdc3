package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cariskill/roadmap/pkg/errors"
	"github.com/cariskill/roadmap/pkg/roadmap"
)

// Records is a file of persisted roadmap rows:
//
//	subject: Go
//	nodes:
//	  - {node_id: basics, title: Basics, depth_level: 1}
//	  - {node_id: generics, title: Generics, depth_level: 2}
//	edges:
//	  - {source_node_id: basics, target_node_id: generics}
//	completed: [basics]
type Records struct {
	Subject   string               `json:"subject,omitempty" yaml:"subject,omitempty"`
	Nodes     []roadmap.NodeRecord `json:"nodes" yaml:"nodes"`
	Edges     []roadmap.EdgeRecord `json:"edges,omitempty" yaml:"edges,omitempty"`
	Completed []string             `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// ReadPayload reads a raw roadmap document and returns it as JSON bytes.
// YAML input is converted to the equivalent JSON; JSON and text input are
// returned unchanged, since the normalizer accepts raw text too.
func ReadPayload(r io.Reader, format string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if format != FormatYAML {
		return data, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode yaml")
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "convert yaml to json")
	}
	return out, nil
}

// ImportPayload reads a payload file, picking the format from its extension.
func ImportPayload(path string) ([]byte, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPayload(f, FormatFromPath(path))
}

// ReadRecords decodes persisted rows in JSON or YAML.
func ReadRecords(r io.Reader, format string) (Records, error) {
	var rec Records
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&rec)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&rec)
	default:
		return Records{}, errors.New(errors.ErrCodeInvalidFormat, "records cannot be read as %s", format)
	}
	if err != nil {
		return Records{}, errors.Wrap(errors.ErrCodeInvalidRecord, err, "decode records")
	}
	return rec, nil
}

// ImportRecords reads a records file, picking the format from its extension.
func ImportRecords(path string) (Records, error) {
	f, err := open(path)
	if err != nil {
		return Records{}, err
	}
	defer f.Close()
	return ReadRecords(f, FormatFromPath(path))
}

// ReadCompletion decodes a list of completed node IDs. JSON and YAML input
// is an array of strings; text input has one ID per line, with blank lines
// and lines starting with '#' ignored.
func ReadCompletion(r io.Reader, format string) ([]string, error) {
	var ids []string
	switch format {
	case FormatText:
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			ids = append(ids, line)
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return ids, nil
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&ids); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode completion list")
		}
	default:
		if err := json.NewDecoder(r).Decode(&ids); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode completion list")
		}
	}
	return ids, nil
}

// ImportCompletion reads a completion list file.
func ImportCompletion(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCompletion(f, FormatFromPath(path))
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
