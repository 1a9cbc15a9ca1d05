package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/sourcekite/symgold/internal/verify"
)

// Server exposes symbol extraction and golden verification over the Model
// Context Protocol on stdio.
type Server struct {
	verifier *verify.Verifier
	mcp      *server.MCPServer
}

// NewServer creates an MCP server backed by the given verifier.
func NewServer(verifier *verify.Verifier) (*Server, error) {
	if verifier == nil {
		return nil, fmt.Errorf("verifier is required")
	}

	mcpServer := server.NewMCPServer(
		"symgold-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddExtractSymbolsTool(mcpServer, verifier)
	AddVerifyGoldenTool(mcpServer, verifier)

	return &Server{
		verifier: verifier,
		mcp:      mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the verifier's resources.
func (s *Server) Close() {
	if s.verifier != nil {
		s.verifier.Close()
	}
}
