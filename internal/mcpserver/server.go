// Package mcpserver exposes the spec workflow state machine as an MCP tool.
//
// This implementation uses the MCP SDK (github.com/modelcontextprotocol/go-sdk/mcp)
// and serves a single tool, spec_workflow, whose calls are applied to one
// [workflow.Machine] owned by the [Server].
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"specflow/internal/workflow"
)

// Server is an MCP server wrapping one workflow instance.
type Server struct {
	mcp     *mcp.Server
	machine *workflow.Machine
	logger  *zap.Logger
}

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "spec-workflow-server")
	Name string

	// Version is the server version (default: "1.0.0")
	Version string

	// Logger for structured logging
	Logger *zap.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "spec-workflow-server",
		Version: "1.0.0",
		Logger:  zap.NewNop(),
	}
}

// NewServer creates an MCP server that applies spec_workflow calls to machine.
func NewServer(cfg *Config, machine *workflow.Machine) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if machine == nil {
		return nil, fmt.Errorf("workflow machine is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		machine: machine,
		logger:  logger,
	}

	// The raw handler form skips SDK-side schema validation; a bad stage must
	// come back as a failed workflow payload, not a JSON-RPC error.
	mcpServer.AddTool(newTool(), s.handleSpecWorkflow)

	return s, nil
}

// Run serves MCP on stdin/stdout until ctx is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.RunTransport(ctx, &mcp.StdioTransport{})
}

// RunTransport serves MCP on an arbitrary transport.
func (s *Server) RunTransport(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Spec Workflow MCP Server running on stdio")
	if err := s.mcp.Run(ctx, transport); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}

// Connect attaches the server to a transport and returns the session
// without blocking. Used by tests with in-memory transports.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, transport, nil)
}

// Machine returns the workflow machine the server applies calls to.
func (s *Server) Machine() *workflow.Machine {
	return s.machine
}

// handleSpecWorkflow applies one spec_workflow call.
//
// Workflow failures are reported as tool results with IsError set and the
// failure payload as the only content item.
func (s *Server) handleSpecWorkflow(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw []byte
	if req != nil && req.Params != nil {
		raw = req.Params.Arguments
	}

	result := s.machine.Apply(workflow.DecodeArguments(raw))

	text, err := result.JSON()
	if err != nil {
		return nil, fmt.Errorf("encode workflow result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: result.IsError(),
	}, nil
}
