// Package mcp exposes the search tools over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"greenmcp/internal/tools"
)

// Version is the MCP server version.
const Version = "0.1.0"

type Server struct {
	tools  *tools.Toolset
	server *mcp.Server
}

func NewServer(ts *tools.Toolset) (*Server, error) {
	if ts == nil {
		return nil, errors.New("mcp server: toolset is required")
	}
	s := &Server{
		tools: ts,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "greenmcp",
			Version: Version,
		}, nil),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns a streamable HTTP handler for mounting on an existing mux.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}
