package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/sourcekite/symgold/internal/verify"
)

// progressReporter renders a progress bar across a multi-file verification
// run. Worker goroutines report concurrently, so updates are serialized.
type progressReporter struct {
	quiet     bool
	mu        sync.Mutex
	bar       *progressbar.ProgressBar
	startTime time.Time
}

// newProgressReporter creates a progress reporter. quiet suppresses all
// bar output (single-file runs and JSONL output use it).
func newProgressReporter(quiet bool) *progressReporter {
	return &progressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (p *progressReporter) OnStart(totalFiles int) {
	if p.quiet || totalFiles < 2 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Verifying fixtures"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progressReporter) OnFileDone(result verify.FileResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *progressReporter) OnComplete(report *verify.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
	if !p.quiet {
		fmt.Printf("Verified %d files in %s: %s\n",
			len(report.Results), time.Since(p.startTime).Round(time.Millisecond), report.Summary())
	}
}
