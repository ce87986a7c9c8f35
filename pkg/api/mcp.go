package api

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/wordcalc/pkg/kit"
)

// NewMCPServer creates an MCP server exposing the wordcalc tools.
func NewMCPServer(svc Service, version string, logger *slog.Logger) *server.MCPServer {
	srv := server.NewMCPServer("wordcalc", version, server.WithToolCapabilities(false))
	RegisterMCPTools(srv, svc, logger)
	return srv
}

// RegisterMCPTools registers the four wordcalc MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, svc Service, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	ep := newEndpoints(svc, func(name string) kit.Middleware {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))
	})

	kit.RegisterMCPTool(srv, mcp.NewTool("compute",
		mcp.WithDescription("Evaluate an arithmetic request written in words for the server's locale "+
			"(e.g. \"двадцать три умножить на два\" or \"twenty-three times two\"). "+
			"Returns the symbolic expression and the outcome; the attempt is recorded in the history."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The request, in words and/or digits")),
	), ep.compute, func(args map[string]any) (any, error) {
		text, err := kit.StringArg(args, "text")
		if err != nil {
			return nil, err
		}
		return &computeReq{Text: text}, nil
	})

	kit.RegisterMCPTool(srv, mcp.NewTool("list_history",
		mcp.WithDescription("List every recorded calculation, oldest first."),
	), ep.listHistory, kit.NoArgs)

	kit.RegisterMCPTool(srv, mcp.NewTool("clear_history",
		mcp.WithDescription("Delete every recorded calculation."),
		mcp.WithDestructiveHintAnnotation(true),
	), ep.clearHistory, kit.NoArgs)

	kit.RegisterMCPTool(srv, mcp.NewTool("list_operators",
		mcp.WithDescription("List the operator phrases understood by the server and their symbols, longest first."),
		mcp.WithReadOnlyHintAnnotation(true),
	), ep.listOperators, kit.NoArgs)
}
