// Package mcpserver exposes offset resolution and endpoint geometry as MCP
// tools, so agents can load a layout fixture and query it over stdio.
package mcpserver

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/plumbgeom/dom"
	"github.com/chrisuehlinger/plumbgeom/endpoint"
	"github.com/chrisuehlinger/plumbgeom/position"
)

// Server is the MCP server. Loaded fixtures are kept in memory under a
// generated document id until unloaded.
type Server struct {
	mcp      *server.MCPServer
	logger   *zap.Logger
	registry *endpoint.Registry

	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	doc      *dom.Document
	resolver *position.Resolver[*dom.Element]
}

// Deps holds what the server needs from the caller.
type Deps struct {
	Logger   *zap.Logger
	Registry *endpoint.Registry // endpoint.Default when nil
}

// New creates a server with all tools registered.
func New(deps Deps) *Server {
	s := &Server{
		logger:   deps.Logger,
		registry: deps.Registry,
		docs:     make(map[string]*document),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.registry == nil {
		s.registry = endpoint.Default
	}

	s.mcp = server.NewMCPServer(
		"plumbgeom",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerFixtureTools()
	s.registerGeometryTools()
	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves MCP on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting MCP stdio server")
	return server.ServeStdio(s.mcp)
}

// AddDocument registers an already parsed document and returns its id.
func (s *Server) AddDocument(doc *dom.Document) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.docs[id] = &document{
		doc:      doc,
		resolver: position.NewDOM(position.Options{Logger: s.logger}),
	}
	s.mu.Unlock()
	return id
}

func (s *Server) document(id string) (*document, error) {
	if id == "" {
		return nil, fmt.Errorf("documentId is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("unknown document %q", id)
	}
	return d, nil
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}
