package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "mdschema.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "mdschema.yml"

// envPrefix is the prefix for environment variable overrides. Double
// underscore nests, e.g. MDSCHEMA_VALIDATE__CASCADE_STRATEGY=transitive
// sets validate.cascade_strategy.
const envPrefix = "MDSCHEMA_"

// Load builds a Config by layering, lowest precedence first: built-in
// defaults, the YAML config file (if path is "" the current directory is
// searched), MDSCHEMA_* environment variables, and pflag overrides
// (flags may be nil).
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile(".")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	ApplyDefaults(&cfg)

	if err := cfg.ValidateSettings(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// defaultMap mirrors ApplyDefaults as a koanf confmap layer so env and
// flag overrides have keys to land on.
func defaultMap() map[string]any {
	return map[string]any{
		"naming.prefer_descriptive":     false,
		"types.default_string_length":   DefaultStringLength,
		"types.decimal_precision":       DefaultDecimalPrecision,
		"validate.cascade_strategy":     DefaultCascadeStrategy,
		"validate.max_direct_conflicts": DefaultConflictWindow,
	}
}

// ValidateSettings checks cross-field constraints.
func (c *Config) ValidateSettings() error {
	switch c.Validate.CascadeStrategy {
	case StrategyDirect, StrategyTransitive:
	default:
		return fmt.Errorf("invalid cascade_strategy %q, must be %q or %q",
			c.Validate.CascadeStrategy, StrategyDirect, StrategyTransitive)
	}
	if c.Validate.MaxDirectConflicts < 2 {
		return fmt.Errorf("max_direct_conflicts must be at least 2, got %d",
			c.Validate.MaxDirectConflicts)
	}
	if c.Types.DefaultStringLength < 1 {
		return fmt.Errorf("default_string_length must be positive, got %d",
			c.Types.DefaultStringLength)
	}
	return nil
}

// findConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}
	return ""
}

// FindProjectRoot walks up from startDir to the first directory holding
// an mdschema config file. Returns "" if none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		if findConfigFile(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
