package cli

import (
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pardis/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose Pardis to AI assistants",
	Long:  `Run Pardis as a Model Context Protocol server.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search and library tools over MCP",
	Long: `Serve Pardis over the Model Context Protocol.

Tools: search_all, search_local, index_document.
Resources: pardis://library and pardis://library/{id}.

With no --port the server speaks JSON-RPC on stdin/stdout, which is what
desktop assistants launch. With --port it serves streamable HTTP, useful
for the MCP Inspector.

  pardis mcp serve
  pardis mcp serve --port 8080

Assistant configuration:
  {"mcpServers": {"pardis": {"command": "pardis", "args": ["mcp", "serve"]}}}`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "interface to bind with --port")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Search:  searchService,
		Library: libraryService,
		Index:   indexService,
	})
	if err != nil {
		return err
	}

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
