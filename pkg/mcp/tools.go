package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health of the daemon and its link to the robot"),
		),
		s.handleGetHealth,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_robot_info",
			mcp.WithDescription("Get the robot implementation, manufacturer and model"),
		),
		s.handleGetRobotInfo,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_capabilities",
			mcp.WithDescription("List the capability types the robot supports"),
		),
		s.handleListCapabilities,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_robot_state",
			mcp.WithDescription("Get the robot state attributes (status, battery, fan speed)"),
		),
		s.handleGetRobotState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_zone_presets",
			mcp.WithDescription("List saved zone presets keyed by id"),
		),
		s.handleListZonePresets,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("create_zone_preset",
			mcp.WithDescription("Save a named set of rectangular zones. An existing preset with the same id is replaced."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Preset name"),
			),
			mcp.WithString("id",
				mcp.Description("Preset id (generated when omitted)"),
			),
			mcp.WithArray("zones",
				mcp.Required(),
				mcp.Description(`Zones as {"points":{"pA":{"x":0,"y":0},"pB":...,"pC":...,"pD":...},"iterations":1}`),
				mcp.Items(map[string]any{"type": "object"}),
			),
		),
		s.handleCreateZonePreset,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_zone_preset",
			mcp.WithDescription("Delete a zone preset by id"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Preset id"),
			),
		),
		s.handleDeleteZonePreset,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("clean_zone_presets",
			mcp.WithDescription("Clean the zones of one or more presets as a single job. Fails without cleaning if any id is unknown."),
			mcp.WithArray("ids",
				mcp.Required(),
				mcp.Description("Preset ids, cleaned in order"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.handleCleanZonePresets,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_wifi_configuration",
			mcp.WithDescription("Get the robot's wifi connection"),
		),
		s.handleGetWifiConfiguration,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("manual_control",
			mcp.WithDescription("Enter or leave manual control mode, or move the robot one step"),
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("enable, disable or move"),
				mcp.Enum("enable", "disable", "move"),
			),
			mcp.WithString("movement_command",
				mcp.Description("forward, backward, rotate_clockwise or rotate_counterclockwise (required for move)"),
			),
		),
		s.handleManualControl,
	)
}
