package cli

import (
	"fmt"
	"os"

	"github.com/sourcekite/symgold/internal/config"
	"github.com/sourcekite/symgold/internal/verify"
)

// loadConfig loads the configuration for the current working directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return config.Load(cwd)
}

// newVerifier builds a verifier from config.
func newVerifier(cfg *config.Config) (*verify.Verifier, error) {
	return verify.New(verify.Options{
		GoldenSuffix: cfg.Golden.Suffix,
		GoldenDir:    cfg.Golden.Dir,
		Workers:      cfg.Verify.Workers,
		CacheSize:    cfg.Verify.CacheSize,
	})
}

// resolvePaths expands command arguments into fixture file paths.
// Directories are expanded via glob discovery; files are taken as-is.
// No arguments means the current directory.
func resolvePaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		discovery, err := verify.NewDiscovery(arg, cfg.Paths.Code, cfg.Paths.Ignore, cfg.Golden.Suffix)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		found, err := discovery.Discover()
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no fixture files found")
	}
	return paths, nil
}
