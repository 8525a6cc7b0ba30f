package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override config keys
const EnvPrefix = "WFLINK_"

// Config holds the settings every component reads
type Config struct {
	PrefsFile       string `koanf:"prefs_file" toml:"prefs_file"`
	WorkflowsSubdir string `koanf:"workflows_subdir" toml:"workflows_subdir"`
	AssetExt        string `koanf:"asset_ext" toml:"asset_ext"`
	BuildFile       string `koanf:"build_file" toml:"build_file"`
	ManifestMarker  string `koanf:"manifest_marker" toml:"manifest_marker"`
	LogFile         bool   `koanf:"log_file" toml:"log_file"`
}

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// ConfigFile is an explicit config path; it must exist when set.
	// Empty means the XDG config file, which is optional.
	ConfigFile string

	// Overrides are applied last, keyed like the TOML file
	Overrides map[string]interface{}
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	configPath := opts.ConfigFile
	explicit := configPath != ""
	if !explicit {
		configPath = paths.ConfigFilePath()
	}
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", configPath)
		}
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", configPath)
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would make a run silently do nothing
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"workflows_subdir", c.WorkflowsSubdir},
		{"asset_ext", c.AssetExt},
		{"build_file", c.BuildFile},
		{"manifest_marker", c.ManifestMarker},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Newf(errors.ErrInvalidInput, "config key %s must not be empty", r.key).
				WithDetail("key", r.key)
		}
	}
	return nil
}

// Default returns the embedded defaults without reading files or env
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	return &cfg
}

// ResolvedPrefsFile returns PrefsFile with ~ expanded, or Alfred's
// well-known location when unset
func (c *Config) ResolvedPrefsFile() (string, error) {
	if c.PrefsFile != "" {
		return paths.ExpandHome(c.PrefsFile), nil
	}
	return paths.AlfredPrefsPath()
}
