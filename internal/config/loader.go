package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration for the given root directory with the following
// priority (highest to lowest):
// 1. Environment variables (SYMGOLD_*)
// 2. Config file (.symgold/config.yml or .symgold/config.yaml)
// 3. Default values
func Load(rootDir string) (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(rootDir, ".symgold")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("SYMGOLD")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g. SYMGOLD_VERIFY_WORKERS).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("golden.suffix")
	v.BindEnv("golden.dir")
	v.BindEnv("verify.workers")
	v.BindEnv("verify.cache_size")
	v.BindEnv("verify.debounce_ms")

	// Seed defaults so partial config files merge cleanly.
	defaults := Default()
	v.SetDefault("paths.code", defaults.Paths.Code)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("golden.suffix", defaults.Golden.Suffix)
	v.SetDefault("golden.dir", defaults.Golden.Dir)
	v.SetDefault("verify.workers", defaults.Verify.Workers)
	v.SetDefault("verify.cache_size", defaults.Verify.CacheSize)
	v.SetDefault("verify.debounce_ms", defaults.Verify.DebounceMs)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file means defaults; anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
