package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/schema"
)

type recordingZoneCleaning struct {
	capability.UnimplementedZoneCleaning
	starts [][]entity.Zone
}

func (r *recordingZoneCleaning) Start(ctx context.Context, zones []entity.Zone) error {
	r.starts = append(r.starts, zones)
	return nil
}

func newTestServer(t *testing.T, caps ...capability.Capability) *Server {
	t.Helper()
	r := robot.New(robot.Info{Implementation: "TestRobot"}, nil, robot.NewMemoryConfigStore())
	if err := r.RegisterCapabilities(caps...); err != nil {
		t.Fatal(err)
	}
	return NewServer(r, schema.NewValidator())
}

func callTool(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestZonePresetTools(t *testing.T) {
	ctx := context.Background()
	zc := &recordingZoneCleaning{}
	s := newTestServer(t, zc)

	zone := map[string]any{
		"points": map[string]any{
			"pA": map[string]any{"x": 0, "y": 0},
			"pB": map[string]any{"x": 10, "y": 0},
			"pC": map[string]any{"x": 10, "y": 10},
			"pD": map[string]any{"x": 0, "y": 10},
		},
		"iterations": 2,
	}

	res, err := s.handleCreateZonePreset(ctx, callTool(map[string]any{"id": "hall", "name": "Hall", "zones": []any{zone}}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("create failed: %s", resultText(t, res))
	}

	res, _ = s.handleCreateZonePreset(ctx, callTool(map[string]any{"name": "Empty", "zones": []any{}}))
	if !res.IsError {
		t.Error("expected an error for empty zones")
	}

	res, _ = s.handleListZonePresets(ctx, callTool(nil))
	var presets map[string]entity.ZonePreset
	if err := json.Unmarshal([]byte(resultText(t, res)), &presets); err != nil {
		t.Fatal(err)
	}
	if len(presets) != 1 || presets["hall"].Zones[0].Iterations != 2 {
		t.Errorf("unexpected presets: %+v", presets)
	}

	res, _ = s.handleCleanZonePresets(ctx, callTool(map[string]any{"ids": []any{"hall", "missing"}}))
	if !res.IsError || len(zc.starts) != 0 {
		t.Error("unknown ids must fail without cleaning")
	}

	res, _ = s.handleCleanZonePresets(ctx, callTool(map[string]any{"ids": []any{"hall", "hall"}}))
	if res.IsError {
		t.Fatalf("clean failed: %s", resultText(t, res))
	}
	if len(zc.starts) != 1 || len(zc.starts[0]) != 2 {
		t.Errorf("unexpected Start calls: %+v", zc.starts)
	}

	res, _ = s.handleDeleteZonePreset(ctx, callTool(map[string]any{"id": "hall"}))
	if res.IsError {
		t.Fatalf("delete failed: %s", resultText(t, res))
	}
	res, _ = s.handleDeleteZonePreset(ctx, callTool(map[string]any{"id": "hall"}))
	if !res.IsError {
		t.Error("expected an error deleting an unknown preset")
	}
}

func TestCapabilityTools_Unsupported(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	res, _ := s.handleGetWifiConfiguration(ctx, callTool(nil))
	if !res.IsError || !strings.Contains(resultText(t, res), "does not support") {
		t.Error("expected unsupported wifi configuration error")
	}

	res, _ = s.handleManualControl(ctx, callTool(map[string]any{"action": "enable"}))
	if !res.IsError {
		t.Error("expected unsupported manual control error")
	}
}

func TestManualControlTool_NotImplemented(t *testing.T) {
	s := newTestServer(t, capability.UnimplementedManualControl{})

	res, _ := s.handleManualControl(context.Background(), callTool(map[string]any{"action": "move", "movement_command": "forward"}))
	if !res.IsError || !strings.Contains(resultText(t, res), capability.ErrNotImplemented.Error()) {
		t.Errorf("expected not implemented error, got %s", resultText(t, res))
	}
}

func TestRobotTools(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, &recordingZoneCleaning{})
	s.robot.UpdateState(entity.BatteryStateAttribute{Level: 55, Flag: entity.BatteryFlagDischarging})

	res, _ := s.handleListCapabilities(ctx, callTool(nil))
	var caps ListCapabilitiesOutput
	if err := json.Unmarshal([]byte(resultText(t, res)), &caps); err != nil {
		t.Fatal(err)
	}
	if caps.Count != 1 || caps.Capabilities[0] != string(capability.TypeZoneCleaning) {
		t.Errorf("unexpected capabilities: %+v", caps)
	}

	res, _ = s.handleGetRobotState(ctx, callTool(nil))
	if !strings.Contains(resultText(t, res), `"level": 55`) {
		t.Errorf("expected battery level in state, got %s", resultText(t, res))
	}

	res, _ = s.handleGetHealth(ctx, callTool(nil))
	var health GetHealthOutput
	if err := json.Unmarshal([]byte(resultText(t, res)), &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "unhealthy" || health.Transport != "disconnected" {
		t.Errorf("unexpected health: %+v", health)
	}
}
