package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sourcekite/symgold/internal/parsers"
	"github.com/sourcekite/symgold/internal/verify"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Continuously verify fixtures as they change",
	Long: `Watch runs an initial verification over the directory, then re-verifies
changed fixtures (and fixtures whose golden file changed) after a short
debounce. Unchanged files are served from the extraction cache.

Example:
  symgold watch fixtures/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}
	defer verifier.Close()

	runAll := func() {
		paths, err := resolvePaths([]string{dir}, cfg)
		if err != nil {
			log.Printf("discovery failed: %v", err)
			return
		}
		report := verifier.VerifyFiles(ctx, paths, nil)
		printReport(report)
		log.Printf("%s", report.Summary())
	}

	runAll()

	watcher, err := verify.NewWatcher(
		[]string{dir},
		parsers.SupportedExtensions(),
		cfg.Golden.Suffix,
		time.Duration(cfg.Verify.DebounceMs)*time.Millisecond,
	)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(ctx, func(files []string) {
		log.Printf("%d files changed, re-verifying...", len(files))
		runAll()
	}); err != nil {
		return err
	}

	log.Printf("Watching %s for changes (ctrl-c to stop)", dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	return nil
}
