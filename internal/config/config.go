// Package config loads roadmap engine settings.
package config

import (
	"time"

	"github.com/cariskill/roadmap/pkg/errors"
	"github.com/cariskill/roadmap/pkg/layout"
	"github.com/cariskill/roadmap/pkg/normalize"
	"github.com/cariskill/roadmap/pkg/pipeline"
	"github.com/cariskill/roadmap/pkg/roadmap"
)

// Config holds all engine and CLI settings.
type Config struct {
	Layout     layout.Config    `mapstructure:"layout" toml:"layout"`
	Builder    BuilderConfig    `mapstructure:"builder" toml:"builder"`
	Normalizer NormalizerConfig `mapstructure:"normalizer" toml:"normalizer"`
	Server     ServerConfig     `mapstructure:"server" toml:"server"`
}

// BuilderConfig holds graph builder settings.
type BuilderConfig struct {
	LearnerLabel      string `mapstructure:"learner_label" toml:"learner_label"`
	SubjectLabel      string `mapstructure:"subject_label" toml:"subject_label"`
	SequentialModules bool   `mapstructure:"sequential_modules" toml:"sequential_modules"`
	ExpandItems       bool   `mapstructure:"expand_items" toml:"expand_items"`
}

// NormalizerConfig holds payload normalizer settings.
type NormalizerConfig struct {
	// ExcerptLength caps the raw text kept in the diagnostic module.
	ExcerptLength int `mapstructure:"excerpt_length" toml:"excerpt_length"`
}

// ServerConfig holds settings for `roadmap serve`.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr" toml:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" toml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" toml:"write_timeout"`
	// LogFile enables rotating file logs when set.
	LogFile     string            `mapstructure:"log_file" toml:"log_file"`
	LogRotation LogRotationConfig `mapstructure:"log_rotation" toml:"log_rotation"`
	Cache       CacheConfig       `mapstructure:"cache" toml:"cache"`
}

// CacheConfig controls the normalization cache. A zero TTL disables it; a
// Dir switches from the in-process cache to entry files.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl" toml:"ttl"`
	Dir string        `mapstructure:"dir" toml:"dir"`
}

// LogRotationConfig holds settings for log file rotation.
type LogRotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups" toml:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days" toml:"max_age_days"`
	Compress   bool `mapstructure:"compress" toml:"compress"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Layout: layout.DefaultConfig(),
		Builder: BuilderConfig{
			LearnerLabel: roadmap.DefaultLearnerLabel,
			SubjectLabel: roadmap.DefaultSubjectLabel,
		},
		Normalizer: NormalizerConfig{
			ExcerptLength: normalize.DefaultExcerptLength,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			LogRotation: LogRotationConfig{
				MaxSizeMB:  100,
				MaxBackups: 3,
				MaxAgeDays: 7,
				Compress:   true,
			},
			Cache: CacheConfig{TTL: 10 * time.Minute},
		},
	}
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c *Config) Validate() error {
	l := c.Layout
	switch {
	case l.RankGap <= 0:
		return invalid("layout.rank_gap", l.RankGap)
	case l.NodeGap <= 0:
		return invalid("layout.node_gap", l.NodeGap)
	case l.Margin < 0:
		return invalid("layout.margin", l.Margin)
	case l.Jitter < 0:
		return invalid("layout.jitter", l.Jitter)
	case l.Sweeps < 0:
		return invalid("layout.sweeps", l.Sweeps)
	case l.Sizes.Root <= 0 || l.Sizes.Category <= 0 || l.Sizes.Topic <= 0 || l.Sizes.Skill <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout.sizes must all be positive")
	case l.DefaultWidth <= 0 || l.DefaultHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout default bounds must be positive")
	case c.Normalizer.ExcerptLength <= 0:
		return invalid("normalizer.excerpt_length", c.Normalizer.ExcerptLength)
	case c.Server.Addr == "":
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	case c.Server.Cache.TTL < 0:
		return invalid("server.cache.ttl", c.Server.Cache.TTL)
	}
	return nil
}

func invalid(key string, v any) error {
	return errors.New(errors.ErrCodeInvalidConfig, "invalid %s: %v", key, v)
}

// PipelineOptions returns run options carrying the configured builder,
// normalizer and layout settings. Callers fill in the inputs.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Subject:           c.Builder.SubjectLabel,
		Learner:           c.Builder.LearnerLabel,
		SequentialModules: c.Builder.SequentialModules,
		ExpandItems:       c.Builder.ExpandItems,
		Layout:            c.Layout,
		ExcerptLength:     c.Normalizer.ExcerptLength,
	}
}
