package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so assistants can drive the
OCR workflow.

Tools:
  list_items  list items matching a structured query
  classify    identify documents for OCR
  export      export deduplicated copies for an OCR tool
  import      import OCR output by MD5

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  sercha-ocr mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  sercha-ocr mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Collection:     collectionService,
		Settings:       settingsService,
		Classification: classificationService,
		Export:         exportService,
		Import:         importService,
	}

	server, err := mcp.NewServer(ports)
	if errors.Is(err, mcp.ErrMissingCollectionService) || errors.Is(err, mcp.ErrMissingSettingsService) {
		return fmt.Errorf("mcp server not configured: %w", err)
	}
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
