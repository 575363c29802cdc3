package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cariskill/roadmap/pkg/layout"
)

const fileHeader = "# roadmap configuration\n# Environment variables (ROADMAP_SECTION_KEY) override these values.\n\n"

// Marshal encodes cfg as TOML. Durations are written as strings so the
// output loads back through [Load].
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg.toFile()); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes cfg to path, creating parent directories. An existing
// file is only replaced when force is set.
func WriteFile(cfg *Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// fileConfig mirrors Config with string durations for TOML output.
type fileConfig struct {
	Layout     layout.Config    `toml:"layout"`
	Builder    BuilderConfig    `toml:"builder"`
	Normalizer NormalizerConfig `toml:"normalizer"`
	Server     fileServer       `toml:"server"`
}

type fileServer struct {
	Addr         string            `toml:"addr"`
	ReadTimeout  string            `toml:"read_timeout"`
	WriteTimeout string            `toml:"write_timeout"`
	LogFile      string            `toml:"log_file"`
	LogRotation  LogRotationConfig `toml:"log_rotation"`
	Cache        fileCache         `toml:"cache"`
}

type fileCache struct {
	TTL string `toml:"ttl"`
	Dir string `toml:"dir"`
}

func (c *Config) toFile() fileConfig {
	return fileConfig{
		Layout:     c.Layout,
		Builder:    c.Builder,
		Normalizer: c.Normalizer,
		Server: fileServer{
			Addr:         c.Server.Addr,
			ReadTimeout:  c.Server.ReadTimeout.String(),
			WriteTimeout: c.Server.WriteTimeout.String(),
			LogFile:      c.Server.LogFile,
			LogRotation:  c.Server.LogRotation,
			Cache:        fileCache{TTL: c.Server.Cache.TTL.String(), Dir: c.Server.Cache.Dir},
		},
	}
}
