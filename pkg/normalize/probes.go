package normalize

import (
	"strings"

	"github.com/buger/jsonparser"
)

// Probe names reported in [Result.Probe].
const (
	ProbeRootArray  = "root-array"
	ProbeRawText    = "raw-text"
	ProbeDeepSearch = "deep-search"
)

// rawTextKeys are the escape fields upstream generators use when they
// could not produce structured output.
var rawTextKeys = []string{"raw_text", "rawText", "raw_response", "raw"}

type probe struct {
	name string
	run  func(doc []byte, root jsonparser.ValueType, opts Options) (Result, bool)
}

// probes are tried in order; the first match wins. Adding an accepted shape
// is one entry here.
var probes = []probe{
	{ProbeRootArray, probeRootArray},
	keyPath("phases"),
	keyPath("roadmap", "phases"),
	keyPath("learning_path"),
	keyPath("roadmap", "learning_path"),
	keyPath("modules"),
	{ProbeRawText, probeRawText},
	{ProbeDeepSearch, probeDeepSearch},
}

func probeRootArray(doc []byte, root jsonparser.ValueType, _ Options) (Result, bool) {
	if root != jsonparser.Array {
		return Result{}, false
	}
	return Result{Modules: decodeModules(doc), Probe: ProbeRootArray}, true
}

func keyPath(keys ...string) probe {
	path := strings.Join(keys, ".")
	return probe{
		name: path,
		run: func(doc []byte, root jsonparser.ValueType, _ Options) (Result, bool) {
			if root != jsonparser.Object {
				return Result{}, false
			}
			v, t, _, err := jsonparser.Get(doc, keys...)
			if err != nil || t != jsonparser.Array || arrayLen(v) == 0 {
				return Result{}, false
			}
			return Result{Modules: decodeModules(v), Probe: path, Path: path}, true
		},
	}
}

func probeRawText(doc []byte, root jsonparser.ValueType, opts Options) (Result, bool) {
	if root != jsonparser.Object {
		return Result{}, false
	}
	for _, key := range rawTextKeys {
		v, t, _, err := jsonparser.Get(doc, key)
		if err != nil || t != jsonparser.String {
			continue
		}
		text, err := jsonparser.ParseString(v)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		return Result{Modules: []Module{diagnosticModule(text, opts)}, Probe: ProbeRawText, Path: key}, true
	}
	return Result{}, false
}

// candidate is a non-empty array found by deep search.
type candidate struct {
	path  []string
	depth int
	value []byte
}

// probeDeepSearch walks objects depth-first in document order and picks the
// first key whose value is a non-empty array. A key's own value is checked
// before its children are visited. Non-empty arrays are not descended into.
//
// Another candidate at the same depth as the pick marks the result
// ambiguous; the pick itself never changes.
func probeDeepSearch(doc []byte, root jsonparser.ValueType, _ Options) (Result, bool) {
	if root != jsonparser.Object {
		return Result{}, false
	}
	var found []candidate
	collectArrays(doc, nil, &found)
	if len(found) == 0 {
		return Result{}, false
	}

	pick := found[0]
	res := Result{
		Modules: decodeModules(pick.value),
		Probe:   ProbeDeepSearch,
		Path:    strings.Join(pick.path, "."),
	}
	for _, c := range found[1:] {
		if c.depth <= pick.depth {
			res.Ambiguous = true
			res.Alternatives = append(res.Alternatives, strings.Join(c.path, "."))
		}
	}
	return res, true
}

func collectArrays(obj []byte, prefix []string, out *[]candidate) {
	_ = jsonparser.ObjectEach(obj, func(key, value []byte, t jsonparser.ValueType, _ int) error {
		path := append(append([]string(nil), prefix...), string(key))
		switch t {
		case jsonparser.Array:
			if arrayLen(value) > 0 {
				*out = append(*out, candidate{path: path, depth: len(prefix), value: value})
			}
		case jsonparser.Object:
			collectArrays(value, path, out)
		}
		return nil
	})
}

func arrayLen(arr []byte) int {
	n := 0
	_, _ = jsonparser.ArrayEach(arr, func([]byte, jsonparser.ValueType, int, error) { n++ })
	return n
}
