package main

import (
	"github.com/spf13/cobra"

	"greenmcp/internal/mcp"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve the MCP tools over stdio",
	Long: `Serve searchChunks, searchWithinDocument and listDocuments over stdio using
JSON-RPC, for MCP clients that launch the server as a subprocess.

The configured CSV sources are imported first unless GREENMCP_IMPORT_ON_BOOT=false
or the store already holds chunks. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.ImportOnBoot(cmd.Context())

		server, err := mcp.NewServer(a.Tools)
		if err != nil {
			return err
		}
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(stdioCmd)
}
