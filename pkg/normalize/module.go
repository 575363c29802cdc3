package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// Placeholder text for fields a module entry does not carry.
const (
	PlaceholderDescription = "No description available yet."
	placeholderTitleFormat = "Module %d"
	generatedIDFormat      = "module-%d"
)

// Module is the canonical record every roadmap payload shape reduces to.
type Module struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration,omitempty"`
	Items       []string `json:"items"`
}

// rawModule lists every field name seen in the wild. Aliases are resolved
// in declaration order: the first non-empty wins.
type rawModule struct {
	ID any `mapstructure:"id"`

	Skill string `mapstructure:"skill"`
	Title string `mapstructure:"title"`
	Name  string `mapstructure:"name"`

	Obj         string `mapstructure:"obj"`
	Description string `mapstructure:"description"`
	Content     string `mapstructure:"content"`

	Duration  any `mapstructure:"duration"`
	Timeframe any `mapstructure:"timeframe"`

	Items     []any `mapstructure:"items"`
	Topics    []any `mapstructure:"topics"`
	Subtopics []any `mapstructure:"subtopics"`
	Skills    []any `mapstructure:"skills"`
	Resources []any `mapstructure:"resources"`
}

// decodeModules maps each element of a JSON array onto a Module. Element i
// gets placeholder title "Module i+1" and id "module-i+1" when it lacks them.
func decodeModules(arr []byte) []Module {
	var modules []Module
	_, _ = jsonparser.ArrayEach(arr, func(value []byte, t jsonparser.ValueType, _ int, err error) {
		if err != nil {
			return
		}
		modules = append(modules, decodeModule(value, t, len(modules)))
	})
	return modules
}

func decodeModule(value []byte, t jsonparser.ValueType, idx int) Module {
	m := Module{}
	switch t {
	case jsonparser.Object:
		var fields map[string]any
		if err := json.Unmarshal(value, &fields); err == nil {
			m = fromFields(fields)
		}
	case jsonparser.String:
		if s, err := jsonparser.ParseString(value); err == nil {
			m.Title = strings.TrimSpace(s)
		}
	case jsonparser.Number, jsonparser.Boolean:
		m.Title = string(value)
	}

	if m.ID == "" {
		m.ID = fmt.Sprintf(generatedIDFormat, idx+1)
	}
	if m.Title == "" {
		m.Title = fmt.Sprintf(placeholderTitleFormat, idx+1)
	}
	if m.Description == "" {
		m.Description = PlaceholderDescription
	}
	if m.Items == nil {
		m.Items = []string{}
	}
	return m
}

func fromFields(fields map[string]any) Module {
	var raw rawModule
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return Module{}
	}
	// Weak decoding still fails on wildly mistyped fields (an object where a
	// string belongs); keep whatever decoded cleanly.
	_ = dec.Decode(fields)

	return Module{
		ID:          strings.TrimSpace(cast.ToString(raw.ID)),
		Title:       firstNonEmpty(raw.Skill, raw.Title, raw.Name),
		Description: firstNonEmpty(raw.Obj, raw.Description, raw.Content),
		Duration:    firstNonEmpty(cast.ToString(raw.Duration), cast.ToString(raw.Timeframe)),
		Items:       itemTitles(firstNonEmptySlice(raw.Items, raw.Topics, raw.Subtopics, raw.Skills, raw.Resources)),
	}
}

// itemTitles flattens heterogeneous item entries: plain strings are used as
// is, objects contribute their title-like field.
func itemTitles(items []any) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		switch v := it.(type) {
		case map[string]any:
			s = firstNonEmpty(cast.ToString(v["title"]), cast.ToString(v["name"]),
				cast.ToString(v["skill"]), cast.ToString(v["topic"]))
		default:
			s = cast.ToString(v)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptySlice(vals ...[]any) []any {
	for _, v := range vals {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
