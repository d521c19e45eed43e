package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
	"github.com/urmzd/valetd/pkg/schema"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	transportStatus := "disconnected"
	if s.robot.IsConnected() {
		transportStatus = "connected"
	}

	status := "healthy"
	if transportStatus != "connected" {
		status = "unhealthy"
	}

	out := GetHealthOutput{
		Status:    status,
		Transport: transportStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetRobotInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatJSON(s.robot.Info())), nil
}

func (s *Server) handleListCapabilities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types := s.robot.Capabilities().Types()
	out := ListCapabilitiesOutput{
		Capabilities: make([]string, len(types)),
		Count:        len(types),
	}
	for i, t := range types {
		out.Capabilities[i] = string(t)
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetRobotState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := GetRobotStateOutput{
		Connected:  s.robot.IsConnected(),
		Attributes: s.robot.State(),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListZonePresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	presets, err := s.presets.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list zone presets: %s", err)), nil
	}
	return mcp.NewToolResultText(formatJSON(presets)), nil
}

func (s *Server) handleCreateZonePreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %s", err)), nil
	}
	if err := s.validator.ValidateJSON(schema.ZonePreset, raw); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid zone preset: %s", err)), nil
	}

	var in ZonePresetInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid zone preset: %s", err)), nil
	}

	preset, err := entity.NewZonePreset(in.ID, in.Name, in.Zones)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.presets.Put(ctx, preset); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save zone preset: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(preset)), nil
}

func (s *Server) handleDeleteZonePreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.presets.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete zone preset: %s", err)), nil
	}

	out := ResultOutput{Success: true, Message: fmt.Sprintf("Zone preset %q deleted", id)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleCleanZonePresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	zc, ok := capability.Lookup[capability.ZoneCleaning](s.robot.Capabilities(), capability.TypeZoneCleaning)
	if !ok {
		return mcp.NewToolResultError("robot does not support zone cleaning"), nil
	}

	ids, err := requiredStrings(request, "ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	presets, err := s.presets.Resolve(ctx, ids)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := zc.Start(ctx, entity.FlattenZones(presets)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start zone cleaning: %s", err)), nil
	}

	out := ResultOutput{Success: true, Message: fmt.Sprintf("Cleaning %d preset(s)", len(presets))}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetWifiConfiguration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wc, ok := capability.Lookup[capability.WifiConfiguration](s.robot.Capabilities(), capability.TypeWifiConfiguration)
	if !ok {
		return mcp.NewToolResultError("robot does not support wifi configuration"), nil
	}

	cfg, err := wc.GetWifiConfiguration(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get wifi configuration: %s", err)), nil
	}
	return mcp.NewToolResultText(formatJSON(cfg)), nil
}

func (s *Server) handleManualControl(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mc, ok := capability.Lookup[capability.ManualControl](s.robot.Capabilities(), capability.TypeManualControl)
	if !ok {
		return mcp.NewToolResultError("robot does not support manual control"), nil
	}

	action, err := requiredString(request, "action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch action {
	case "enable":
		err = mc.EnterManualControl(ctx)
	case "disable":
		err = mc.LeaveManualControl(ctx)
	case "move":
		var command string
		command, err = requiredString(request, "movement_command")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		err = mc.ManualControl(ctx, capability.MovementCommand(command))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q", action)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("manual control %s failed: %s", action, err)), nil
	}

	out := ResultOutput{Success: true, Message: fmt.Sprintf("Manual control %s done", action)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- Helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func requiredStrings(request mcp.CallToolRequest, key string) ([]string, error) {
	v, ok := request.GetArguments()[key].([]any)
	if !ok || len(v) == 0 {
		return nil, fmt.Errorf("parameter %q must be a non-empty array", key)
	}
	out := make([]string, len(v))
	for i, item := range v {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q must contain only strings", key)
		}
		out[i] = s
	}
	return out, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
