package verify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/maypok86/otter"

	"github.com/sourcekite/symgold/internal/parsers"
	"github.com/sourcekite/symgold/internal/symbols"
)

// Status classifies the outcome of verifying one file.
type Status string

const (
	StatusPass          Status = "pass"
	StatusFail          Status = "fail"
	StatusError         Status = "error"
	StatusMissingGolden Status = "missing_golden"
	StatusRecorded      Status = "recorded"
)

// FileResult is the outcome for a single fixture file. Err carries lex,
// parse, and I/O failures; comparison mismatches live in Diff and are not
// errors.
type FileResult struct {
	Path   string
	Golden string
	Status Status
	Diff   *symbols.DiffResult
	Err    error
}

// Report aggregates one verification run. Results keep the input path order.
type Report struct {
	RunID   string
	Results []FileResult
}

// OK reports whether every file passed.
func (r *Report) OK() bool {
	for _, res := range r.Results {
		if res.Status != StatusPass && res.Status != StatusRecorded {
			return false
		}
	}
	return true
}

// Counts returns the number of passed, failed, and errored files. Missing
// goldens count as failures.
func (r *Report) Counts() (passed, failed, errored int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusPass, StatusRecorded:
			passed++
		case StatusFail, StatusMissingGolden:
			failed++
		case StatusError:
			errored++
		}
	}
	return passed, failed, errored
}

// ProgressReporter receives verification progress events. Implementations
// must tolerate calls from multiple worker goroutines.
type ProgressReporter interface {
	OnStart(totalFiles int)
	OnFileDone(result FileResult)
	OnComplete(report *Report)
}

// NoopProgress discards all progress events.
type NoopProgress struct{}

func (NoopProgress) OnStart(int)           {}
func (NoopProgress) OnFileDone(FileResult) {}
func (NoopProgress) OnComplete(*Report)    {}

// Options configures a Verifier.
type Options struct {
	GoldenSuffix string // appended to fixture path (default ".symbols")
	GoldenDir    string // optional golden directory; empty means sibling files
	Workers      int    // parallel workers (default 4)
	CacheSize    int    // extraction cache entries (default 1024)
}

// Verifier extracts symbol tables and compares them against golden files.
// Per-file extraction is pure, so files are processed by stateless workers
// with no cross-file ordering; extracted tables are cached by content hash
// so watch-mode re-runs skip unchanged files.
type Verifier struct {
	opts  Options
	cache otter.Cache[string, cachedTable]
}

type cachedTable struct {
	hash  string
	table *symbols.Table
}

// New creates a Verifier.
func New(opts Options) (*Verifier, error) {
	if opts.GoldenSuffix == "" && opts.GoldenDir == "" {
		opts.GoldenSuffix = ".symbols"
	}
	if opts.Workers < 1 {
		opts.Workers = 4
	}
	if opts.CacheSize < 1 {
		opts.CacheSize = 1024
	}

	cache, err := otter.MustBuilder[string, cachedTable](opts.CacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction cache: %w", err)
	}

	return &Verifier{
		opts:  opts,
		cache: cache,
	}, nil
}

// Close releases the extraction cache.
func (v *Verifier) Close() {
	v.cache.Close()
}

// GoldenPath returns the golden file path for a fixture.
func (v *Verifier) GoldenPath(fixturePath string) string {
	suffix := v.opts.GoldenSuffix
	if suffix == "" {
		suffix = ".symbols"
	}
	if v.opts.GoldenDir == "" {
		return fixturePath + suffix
	}
	return filepath.Join(v.opts.GoldenDir, filepath.Base(fixturePath)+suffix)
}

// Extract parses one fixture into a symbol table, consulting the cache by
// content hash first.
func (v *Verifier) Extract(ctx context.Context, path string) (*symbols.Table, error) {
	parser, ok := parsers.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("no parser registered for %s", filepath.Ext(path))
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(source)
	hash := hex.EncodeToString(sum[:])

	if entry, ok := v.cache.Get(path); ok && entry.hash == hash {
		return entry.table, nil
	}

	table, err := parser.Parse(ctx, path, source)
	if err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("extracted table violates parent invariant: %w", err)
	}

	v.cache.Set(path, cachedTable{hash: hash, table: table})
	return table, nil
}

// VerifyFiles verifies each fixture against its golden file. Files are
// processed concurrently; the report keeps the input order.
func (v *Verifier) VerifyFiles(ctx context.Context, paths []string, progress ProgressReporter) *Report {
	return v.run(ctx, paths, progress, v.verifyOne)
}

// RecordFiles regenerates the golden file for each fixture from its current
// extraction.
func (v *Verifier) RecordFiles(ctx context.Context, paths []string, progress ProgressReporter) *Report {
	return v.run(ctx, paths, progress, v.recordOne)
}

func (v *Verifier) run(ctx context.Context, paths []string, progress ProgressReporter, fn func(context.Context, string) FileResult) *Report {
	if progress == nil {
		progress = NoopProgress{}
	}

	report := &Report{
		RunID:   uuid.NewString(),
		Results: make([]FileResult, len(paths)),
	}
	progress.OnStart(len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < v.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				var result FileResult
				if ctx.Err() != nil {
					result = FileResult{
						Path:   paths[idx],
						Status: StatusError,
						Err:    ctx.Err(),
					}
				} else {
					result = fn(ctx, paths[idx])
				}
				report.Results[idx] = result
				progress.OnFileDone(result)
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	progress.OnComplete(report)
	return report
}

// verifyOne extracts one fixture and compares it to its golden file.
func (v *Verifier) verifyOne(ctx context.Context, path string) FileResult {
	result := FileResult{
		Path:   path,
		Golden: v.GoldenPath(path),
	}

	actual, err := v.Extract(ctx, path)
	if err != nil {
		result.Status = StatusError
		result.Err = err
		return result
	}

	expected, err := symbols.ReadGolden(result.Golden)
	if err != nil {
		if os.IsNotExist(err) {
			result.Status = StatusMissingGolden
			result.Err = fmt.Errorf("golden file %s does not exist (run `symgold record` to create it)", result.Golden)
			return result
		}
		result.Status = StatusError
		result.Err = err
		return result
	}

	result.Diff = symbols.Compare(expected, actual)
	if result.Diff.OK() {
		result.Status = StatusPass
	} else {
		result.Status = StatusFail
	}
	return result
}

// recordOne extracts one fixture and writes its golden file.
func (v *Verifier) recordOne(ctx context.Context, path string) FileResult {
	result := FileResult{
		Path:   path,
		Golden: v.GoldenPath(path),
	}

	table, err := v.Extract(ctx, path)
	if err != nil {
		result.Status = StatusError
		result.Err = err
		return result
	}

	if err := symbols.WriteGolden(result.Golden, table); err != nil {
		result.Status = StatusError
		result.Err = err
		return result
	}

	result.Status = StatusRecorded
	return result
}

// Summary renders a one-line human-readable summary of the report.
func (r *Report) Summary() string {
	passed, failed, errored := r.Counts()
	parts := []string{fmt.Sprintf("%d passed", passed)}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	if errored > 0 {
		parts = append(parts, fmt.Sprintf("%d errored", errored))
	}
	return strings.Join(parts, ", ")
}
