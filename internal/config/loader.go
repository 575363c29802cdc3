package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/cariskill/roadmap/pkg/errors"
)

// Config file locations.
const (
	// GlobalConfigDir is the XDG config directory name.
	GlobalConfigDir = "roadmap"
	// ProjectConfigDir is the project-local config directory.
	ProjectConfigDir = ".roadmap"
	// ConfigFile is the config file name in both locations.
	ConfigFile = "config.toml"
	// EnvPrefix prefixes environment overrides, e.g. ROADMAP_LAYOUT_RANK_GAP.
	EnvPrefix = "ROADMAP"
)

// Load reads configuration. Precedence (later overrides earlier):
//  1. Default() values
//  2. $XDG_CONFIG_HOME/roadmap/config.toml (global)
//  3. .roadmap/config.toml (project)
//  4. explicit path (the --config flag), which must exist
//  5. environment variables (ROADMAP_*)
//
// Missing global and project files are ignored. The result is validated.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	defaults, err := structToMap(Default())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode defaults")
	}
	if err := v.MergeConfigMap(defaults); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "merge defaults")
	}

	for _, path := range []string{globalConfigPath(), projectConfigPath()} {
		if path == "" {
			continue
		}
		if err := loadConfigFile(v, path); err != nil {
			return nil, err
		}
	}

	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", explicitPath)
		}
		if err := loadConfigFile(v, explicitPath); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viperDecodeHook()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GlobalConfigPath returns where the global config file lives, whether or
// not it exists.
func GlobalConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, GlobalConfigDir, ConfigFile), nil
}

func globalConfigPath() string {
	path, err := GlobalConfigPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func projectConfigPath() string {
	path := filepath.Join(ProjectConfigDir, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// loadConfigFile merges a TOML file into v. Missing files are ignored.
func loadConfigFile(v *viper.Viper, path string) error {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer func() { _ = file.Close() }()

	fileViper := viper.New()
	fileViper.SetConfigType("toml")
	if err := fileViper.ReadConfig(file); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return v.MergeConfigMap(fileViper.AllSettings())
}

func viperDecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// structToMap converts a config to a map for viper.MergeConfigMap, so every
// key is known to viper and can be overridden from the environment.
func structToMap(cfg *Config) (map[string]any, error) {
	result := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "mapstructure",
		Result:     &result,
		DecodeHook: durationToStringHook(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}
	return result, nil
}

func durationToStringHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data any) (any, error) {
		if from != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return data.(time.Duration).String(), nil
	}
}
