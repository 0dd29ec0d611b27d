package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long:  `Start an MCP server exposing shotwatch tools (list, take_screenshot, start_monitoring, stop_monitoring, status, configure) over stdio or streamable HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		cfg := MCPConfig{
			Transport:  transport,
			Port:       port,
			ConfigPath: configPath(cmd),
		}

		server, err := newMCPServer(cfg)
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}

		if transport == "streamable-http" {
			fmt.Printf("Starting MCP server on port %d (streamable-http)\n", port)
		}
		return server.serve(cfg)
	},
}

func init() {
	serveCmd.Flags().String("transport", "stdio", "Transport to use: stdio or streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	rootCmd.AddCommand(serveCmd)
}
