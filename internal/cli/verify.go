package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sourcekite/symgold/internal/parsers"
	"github.com/sourcekite/symgold/internal/verify"
)

var verifyQuiet bool

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [paths...]",
	Short: "Verify extracted symbols against golden files",
	Long: `Verify extracts each fixture and compares the result against its golden
file, reporting every positional mismatch (record index, field, expected,
actual) rather than stopping at the first one.

Exit status: 0 on full match, 1 on any mismatch or missing golden,
2 on lex/parse failures.

Example:
  symgold verify fixtures/
  symgold verify testdata/rust/golden_rust.rs`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVarP(&verifyQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	code, err := verifyRun(args, verifyQuiet)
	if err != nil {
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// verifyRun executes one verification run and returns the process exit
// status. The verifier is closed before the status is returned, so exiting
// on it does not leak the extraction cache.
func verifyRun(args []string, quiet bool) (int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return 0, err
	}

	paths, err := resolvePaths(args, cfg)
	if err != nil {
		return 0, err
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return 0, err
	}

	report := verifier.VerifyFiles(context.Background(), paths, newProgressReporter(quiet))
	verifier.Close()

	printReport(report)
	if report.OK() {
		return 0, nil
	}
	return exitCode(report), nil
}

// printReport prints every non-passing file with its positional diff.
func printReport(report *verify.Report) {
	for _, res := range report.Results {
		switch res.Status {
		case verify.StatusPass:
			if verbose {
				fmt.Printf("PASS  %s\n", res.Path)
			}
		case verify.StatusFail:
			fmt.Printf("FAIL  %s (golden: %s)\n", res.Path, res.Golden)
			for _, m := range res.Diff.Mismatches {
				fmt.Printf("      %s\n", m)
			}
		case verify.StatusMissingGolden:
			fmt.Printf("MISS  %s: %v\n", res.Path, res.Err)
		case verify.StatusError:
			fmt.Printf("ERROR %s: %v\n", res.Path, res.Err)
		}
	}
}

// exitCode maps a failed report to the process exit status: lex/parse
// failures take precedence over data mismatches.
func exitCode(report *verify.Report) int {
	for _, res := range report.Results {
		var lexErr *parsers.LexError
		var parseErr *parsers.ParseError
		if errors.As(res.Err, &lexErr) || errors.As(res.Err, &parseErr) {
			return 2
		}
	}
	return 1
}
