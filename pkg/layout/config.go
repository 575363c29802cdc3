package layout

import "github.com/cariskill/roadmap/pkg/dag"

// Sizes is the visual weight (diameter) of a node per kind.
type Sizes struct {
	Root     float64 `mapstructure:"root" toml:"root" json:"root"`
	Category float64 `mapstructure:"category" toml:"category" json:"category"`
	Topic    float64 `mapstructure:"topic" toml:"topic" json:"topic"`
	Skill    float64 `mapstructure:"skill" toml:"skill" json:"skill"`
}

// Of returns the size of a node of kind k.
func (s Sizes) Of(k dag.Kind) float64 {
	switch k {
	case dag.KindRoot:
		return s.Root
	case dag.KindCategory:
		return s.Category
	case dag.KindTopic:
		return s.Topic
	default:
		return s.Skill
	}
}

// Config holds the layout constants.
type Config struct {
	// RankGap is the vertical distance between consecutive ranks.
	RankGap float64 `mapstructure:"rank_gap" toml:"rank_gap" json:"rank_gap"`
	// NodeGap is added to the combined half-sizes of two rank neighbours.
	NodeGap float64 `mapstructure:"node_gap" toml:"node_gap" json:"node_gap"`
	// Margin pads the bounding box on every side.
	Margin float64 `mapstructure:"margin" toml:"margin" json:"margin"`
	// Jitter is the maximum per-axis offset applied to each node.
	Jitter float64 `mapstructure:"jitter" toml:"jitter" json:"jitter"`
	// Sweeps is the number of barycenter passes used to order ranks.
	Sweeps int `mapstructure:"sweeps" toml:"sweeps" json:"sweeps"`

	Sizes Sizes `mapstructure:"sizes" toml:"sizes" json:"sizes"`

	// DefaultWidth and DefaultHeight size the bounds of an empty layout.
	DefaultWidth  float64 `mapstructure:"default_width" toml:"default_width" json:"default_width"`
	DefaultHeight float64 `mapstructure:"default_height" toml:"default_height" json:"default_height"`
}

// DefaultConfig returns the stock layout constants.
func DefaultConfig() Config {
	return Config{
		RankGap: 160,
		NodeGap: 40,
		Margin:  120,
		Jitter:  12,
		Sweeps:  4,
		Sizes: Sizes{
			Root:     120,
			Category: 90,
			Topic:    80,
			Skill:    56,
		},
		DefaultWidth:  1200,
		DefaultHeight: 800,
	}
}
