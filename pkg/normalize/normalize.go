package normalize

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/buger/jsonparser"
)

// DefaultExcerptLength is the rune budget for raw-text excerpts.
const DefaultExcerptLength = 280

// DiagnosticModuleID identifies the module synthesized from unparsed text.
const DiagnosticModuleID = "unparsed-roadmap"

// Options tunes normalization.
type Options struct {
	// ExcerptLength caps the raw-text excerpt in the diagnostic module.
	// Zero means DefaultExcerptLength.
	ExcerptLength int
}

// Result is the normalizer output plus how it was found.
type Result struct {
	// Modules is the ordered module list; empty (never nil) when nothing
	// recognizable was found.
	Modules []Module `json:"modules"`
	// Probe names the strategy that matched, or "" when none did.
	Probe string `json:"probe"`
	// Path is the dotted key path of the array (or raw-text field) used.
	Path string `json:"path,omitempty"`
	// Ambiguous is set when deep search saw other candidate arrays at the
	// same depth as the one it picked, or shallower ones later in the
	// document.
	Ambiguous bool `json:"ambiguous,omitempty"`
	// Alternatives lists the dotted paths of those other candidates.
	Alternatives []string `json:"alternatives,omitempty"`
}

// Normalize reduces a raw roadmap document to canonical modules.
//
// data may be a JSON object, a JSON array, or a JSON-encoded string holding
// either. Bytes that are not JSON at all are treated as raw generator text
// and produce a single diagnostic module. Normalize never fails; the worst
// case is an empty module list.
func Normalize(data []byte, opts Options) Result {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return empty()
	}

	v, t, _, err := jsonparser.Get(data)
	if err != nil || t == jsonparser.Unknown || t == jsonparser.NotExist {
		return fromText(string(data), opts)
	}

	switch t {
	case jsonparser.String:
		s, err := jsonparser.ParseString(v)
		if err != nil {
			return empty()
		}
		return NormalizeString(s, opts)
	case jsonparser.Object, jsonparser.Array:
		if !json.Valid(data) {
			return fromText(string(data), opts)
		}
	default:
		return empty()
	}

	for _, p := range probes {
		if res, ok := p.run(data, t, opts); ok {
			if res.Modules == nil {
				res.Modules = []Module{}
			}
			return res
		}
	}
	return empty()
}

// NormalizeString handles payloads stored as text columns: JSON text is
// parsed, anything else becomes the diagnostic module.
func NormalizeString(s string, opts Options) Result {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return empty()
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return Normalize([]byte(trimmed), opts)
	}
	return fromText(trimmed, opts)
}

// NormalizeValue accepts an already-decoded value (map, slice, string, raw
// bytes or json.RawMessage).
//
// Decoded maps lose their key order; they are re-encoded with sorted keys,
// so deep search over them visits keys alphabetically.
func NormalizeValue(v any, opts Options) Result {
	switch x := v.(type) {
	case nil:
		return empty()
	case string:
		return NormalizeString(x, opts)
	case []byte:
		return Normalize(x, opts)
	case json.RawMessage:
		return Normalize(x, opts)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return empty()
	}
	return Normalize(data, opts)
}

func empty() Result { return Result{Modules: []Module{}} }

func fromText(text string, opts Options) Result {
	return Result{Modules: []Module{diagnosticModule(text, opts)}, Probe: ProbeRawText}
}

func diagnosticModule(text string, opts Options) Module {
	return Module{
		ID:          DiagnosticModuleID,
		Title:       "Roadmap could not be parsed",
		Description: "The generated roadmap was not in a recognized format. Excerpt: " + excerpt(text, opts.excerptLength()),
		Items:       []string{},
	}
}

func (o Options) excerptLength() int {
	if o.ExcerptLength > 0 {
		return o.ExcerptLength
	}
	return DefaultExcerptLength
}

func excerpt(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	r := []rune(text)
	return string(r[:n]) + "…"
}
