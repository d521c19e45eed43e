// Package mcp exposes the robot's capabilities as MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/schema"
)

// Server wraps the MCP server with the robot it controls
type Server struct {
	mcpServer *server.MCPServer
	robot     *robot.Robot
	presets   *robot.ZonePresetStore
	validator *schema.Validator
}

// NewServer creates a new MCP server for r
func NewServer(r *robot.Robot, validator *schema.Validator) *Server {
	s := &Server{
		robot:     r,
		presets:   robot.NewZonePresetStore(r.Config()),
		validator: validator,
	}

	s.mcpServer = server.NewMCPServer(
		"valetd",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
