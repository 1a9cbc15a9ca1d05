package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sourcekite/symgold/internal/symbols"
)

var extractFormat string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [paths...]",
	Short: "Extract symbol records from source files",
	Long: `Extract parses each source file and prints one record per declared symbol
in source order: kind, name, enclosing parent, and the raw declaration
header. The jsonl format is the same line-oriented format golden files use.

Example:
  symgold extract testdata/rust/golden_rust.rs
  symgold extract --format jsonl fixtures/`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "text", "output format: text or jsonl")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	for _, path := range paths {
		table, err := verifier.Extract(ctx, path)
		if err != nil {
			return err
		}

		switch extractFormat {
		case "jsonl":
			if err := symbols.EncodeGolden(os.Stdout, table); err != nil {
				return err
			}
		case "text":
			printTable(table, len(paths) > 1)
		default:
			return fmt.Errorf("unknown format %q (want text or jsonl)", extractFormat)
		}
	}

	return nil
}

func printTable(table *symbols.Table, withHeader bool) {
	if withHeader {
		fmt.Printf("%s (%s):\n", table.FilePath, table.Language)
	}
	for i, rec := range table.Records() {
		indent := ""
		if rec.Parent != "" {
			indent = "  "
		}
		fmt.Printf("%s%3d  %-13s %-20s %s\n", indent, i, rec.Kind, qualifiedName(rec), rec.Signature)
	}
}

func qualifiedName(rec symbols.Record) string {
	if rec.Parent == "" {
		return rec.Name
	}
	return rec.Parent + "." + rec.Name
}
