package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sourcekite/symgold/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for symbol extraction",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants extract symbol inventories and verify them against
golden files.

The MCP server:
- Provides the extract_symbols and verify_golden tools
- Communicates via stdio (standard MCP transport)

Example:
  symgold mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(verifier)
	if err != nil {
		verifier.Close()
		return err
	}
	defer server.Close()

	return server.Serve(ctx)
}
