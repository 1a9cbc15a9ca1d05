package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sourcekite/symgold/internal/symbols"
	"github.com/sourcekite/symgold/internal/verify"
)

// extractResponse is the JSON payload returned by the extract_symbols tool.
type extractResponse struct {
	Path     string           `json:"path"`
	Language string           `json:"language"`
	Records  []symbols.Record `json:"records"`
}

// verifyResponse is the JSON payload returned by the verify_golden tool.
type verifyResponse struct {
	Path       string             `json:"path"`
	Golden     string             `json:"golden"`
	Status     verify.Status      `json:"status"`
	Mismatches []symbols.Mismatch `json:"mismatches,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// AddExtractSymbolsTool registers the extract_symbols tool with an MCP
// server. This function is composable - it can be combined with other tool
// registrations.
func AddExtractSymbolsTool(s *server.MCPServer, verifier *verify.Verifier) {
	tool := mcp.NewTool(
		"extract_symbols",
		mcp.WithDescription("Extract the ordered symbol inventory (structs, enums with variants, traits with methods, impl methods, free functions, classes) from a source file. Returns one record per declaration in source order."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the source file to extract")),
	)

	s.AddTool(tool, createExtractHandler(verifier))
}

func createExtractHandler(verifier *verify.Verifier) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, ok := stringArg(request, "path")
		if !ok {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		table, err := verifier.Extract(ctx, path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resp := extractResponse{
			Path:     table.FilePath,
			Language: table.Language,
			Records:  table.Records(),
		}
		return jsonResult(resp)
	}
}

// AddVerifyGoldenTool registers the verify_golden tool with an MCP server.
func AddVerifyGoldenTool(s *server.MCPServer, verifier *verify.Verifier) {
	tool := mcp.NewTool(
		"verify_golden",
		mcp.WithDescription("Verify a source file's extracted symbols against its golden file. Returns the full list of positional mismatches (index, field, expected, actual); an empty list means the file passed."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the source file to verify")),
	)

	s.AddTool(tool, createVerifyHandler(verifier))
}

func createVerifyHandler(verifier *verify.Verifier) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, ok := stringArg(request, "path")
		if !ok {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		report := verifier.VerifyFiles(ctx, []string{path}, nil)
		result := report.Results[0]

		resp := verifyResponse{
			Path:   result.Path,
			Golden: result.Golden,
			Status: result.Status,
		}
		if result.Diff != nil {
			resp.Mismatches = result.Diff.Mismatches
		}
		if result.Err != nil {
			resp.Error = result.Err.Error()
		}
		return jsonResult(resp)
	}
}

// stringArg extracts a required string argument from an MCP request.
func stringArg(request mcp.CallToolRequest, name string) (string, bool) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", false
	}
	value, ok := argsMap[name].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// jsonResult marshals a response as JSON text (mcp-go convention).
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
