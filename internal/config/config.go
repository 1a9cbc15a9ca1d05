package config

import "fmt"

// Config represents the complete symgold configuration.
// It can be loaded from .symgold/config.yml with environment variable
// overrides.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Golden GoldenConfig `yaml:"golden" mapstructure:"golden"`
	Verify VerifyConfig `yaml:"verify" mapstructure:"verify"`
}

// PathsConfig defines which fixture files to verify and which to skip.
type PathsConfig struct {
	Code   []string `yaml:"code" mapstructure:"code"`     // glob patterns for source fixtures
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to skip
}

// GoldenConfig defines where golden files live.
type GoldenConfig struct {
	Suffix string `yaml:"suffix" mapstructure:"suffix"` // appended to the fixture path (default ".symbols")
	Dir    string `yaml:"dir" mapstructure:"dir"`       // optional directory holding goldens; empty means sibling files
}

// VerifyConfig tunes the verification run.
type VerifyConfig struct {
	Workers    int `yaml:"workers" mapstructure:"workers"`         // parallel extraction workers
	CacheSize  int `yaml:"cache_size" mapstructure:"cache_size"`   // extraction cache entries (watch mode)
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // watch debounce in milliseconds
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Code: []string{
				"**/*.rs",
				"**/*.py",
				"**/*.ts",
				"**/*.tsx",
				"**/*.c",
				"**/*.h",
				"**/*.java",
				"**/*.php",
				"**/*.rb",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"target/**",
				"__pycache__/**",
			},
		},
		Golden: GoldenConfig{
			Suffix: ".symbols",
		},
		Verify: VerifyConfig{
			Workers:    4,
			CacheSize:  1024,
			DebounceMs: 500,
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if len(c.Paths.Code) == 0 {
		return fmt.Errorf("paths.code: at least one glob pattern is required")
	}
	if c.Golden.Suffix == "" && c.Golden.Dir == "" {
		return fmt.Errorf("golden: either suffix or dir must be set")
	}
	if c.Verify.Workers < 1 {
		return fmt.Errorf("verify.workers: must be at least 1, got %d", c.Verify.Workers)
	}
	if c.Verify.CacheSize < 1 {
		return fmt.Errorf("verify.cache_size: must be at least 1, got %d", c.Verify.CacheSize)
	}
	if c.Verify.DebounceMs < 0 {
		return fmt.Errorf("verify.debounce_ms: must not be negative, got %d", c.Verify.DebounceMs)
	}
	return nil
}
