// Package mcp exposes the deployment knowledge index to AI agents over the
// Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/deployctx/deployctx/internal/store"
	"github.com/deployctx/deployctx/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing retrieval tools over the record
// catalog. Vectors may be nil; the search tool then falls back to keyword
// search.
type Server struct {
	catalog *store.Store
	vectors *vectordb.Store
	mcp     *server.MCPServer
}

// NewServer creates an MCP server over the given catalog and optional
// vector store.
func NewServer(catalog *store.Store, vectors *vectordb.Store) *Server {
	s := &Server{
		catalog: catalog,
		vectors: vectors,
	}

	s.mcp = server.NewMCPServer(
		"deployctx",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDeploymentsTool, s.handleSearchDeployments)
	s.mcp.AddTool(listPatternsTool, s.handleListPatterns)
	s.mcp.AddTool(getIntentActionsTool, s.handleGetIntentActions)
}

// Serve starts the MCP server on stdio. Stdout carries protocol messages;
// all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
