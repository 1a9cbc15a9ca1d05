package verify

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/sourcekite/symgold/internal/parsers"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery finds fixture files under a root directory using glob include
// and ignore patterns, keeping only extensions with a registered parser.
type Discovery struct {
	rootDir        string
	codePatterns   []compiledPattern
	ignorePatterns []compiledPattern
	goldenSuffix   string
}

// NewDiscovery creates a discovery instance. goldenSuffix is excluded from
// results so golden files never get verified as fixtures.
func NewDiscovery(rootDir string, codePatterns, ignorePatterns []string, goldenSuffix string) (*Discovery, error) {
	d := &Discovery{
		rootDir:      rootDir,
		goldenSuffix: goldenSuffix,
	}

	for _, pattern := range codePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.codePatterns = append(d.codePatterns, compiledPattern{pattern: pattern, glob: g})

		// "**/*.rs" style patterns should also match files at the root.
		if strings.HasPrefix(pattern, "**/") {
			rootPattern := strings.TrimPrefix(pattern, "**/")
			if rg, err := glob.Compile(rootPattern, '/'); err == nil {
				d.codePatterns = append(d.codePatterns, compiledPattern{pattern: rootPattern, glob: rg})
			}
		}
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Discover walks the root and returns matching fixture paths in sorted
// order. Within-file record order is what verification checks; file order
// only needs to be stable for output.
func (d *Discovery) Discover() ([]string, error) {
	var files []string

	supported := make(map[string]bool)
	for _, ext := range parsers.SupportedExtensions() {
		supported[ext] = true
	}

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(d.rootDir, path)
		if relErr != nil {
			return relErr
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if d.ignored(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if d.goldenSuffix != "" && strings.HasSuffix(path, d.goldenSuffix) {
			return nil
		}
		if !supported[filepath.Ext(path)] {
			return nil
		}
		if d.ignored(relPath) {
			return nil
		}
		if !d.matchesCode(relPath) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func (d *Discovery) matchesCode(relPath string) bool {
	for _, p := range d.codePatterns {
		if p.glob.Match(relPath) {
			return true
		}
	}
	return false
}

func (d *Discovery) ignored(relPath string) bool {
	for _, p := range d.ignorePatterns {
		if p.glob.Match(relPath) {
			return true
		}
	}
	return false
}
