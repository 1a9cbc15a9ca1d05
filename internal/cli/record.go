package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourcekite/symgold/internal/verify"
)

// recordCmd represents the record command
var recordCmd = &cobra.Command{
	Use:   "record [paths...]",
	Short: "Record golden files from current extraction output",
	Long: `Record extracts each fixture and writes the result as its golden file,
replacing any existing golden. Use after intentionally changing a fixture
or the extractor, then review the golden diff in version control.

Example:
  symgold record fixtures/
  symgold record testdata/rust/golden_rust.rs`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := resolvePaths(args, cfg)
	if err != nil {
		return err
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}
	defer verifier.Close()

	report := verifier.RecordFiles(ctx, paths, nil)

	recorded := 0
	for _, res := range report.Results {
		switch res.Status {
		case verify.StatusRecorded:
			recorded++
			if verbose {
				fmt.Printf("recorded %s\n", res.Golden)
			}
		case verify.StatusError:
			fmt.Printf("ERROR %s: %v\n", res.Path, res.Err)
		}
	}

	fmt.Printf("Recorded %d golden files\n", recorded)
	if recorded != len(report.Results) {
		return fmt.Errorf("%d files failed to record", len(report.Results)-recorded)
	}
	return nil
}
