package main

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/wordcalc/pkg/api"
	"github.com/hazyhaar/wordcalc/pkg/kit"
)

func (c *cli) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		Long: `Serves compute, list_history, clear_history and list_operators as MCP
tools on stdin/stdout. Logs go to stderr or log.file, never to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			stdio := server.NewStdioServer(api.NewMCPServer(a.calc, version, a.logger))
			stdio.SetContextFunc(func(ctx context.Context) context.Context {
				return kit.WithTransport(ctx, "mcp_stdio")
			})
			a.logger.Info("mcp stdio server starting", "locale", a.calc.Locale())
			return stdio.Listen(cmd.Context(), c.stdin, c.stdout)
		},
	}
}
