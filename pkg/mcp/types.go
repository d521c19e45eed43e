package mcp

import (
	"github.com/urmzd/valetd/pkg/entity"
)

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or unhealthy)"`
	Transport string `json:"transport" jsonschema:"description=Robot link status"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// ListCapabilitiesOutput is the output for the list_capabilities tool
type ListCapabilitiesOutput struct {
	Capabilities []string `json:"capabilities" jsonschema:"description=Registered capability types"`
	Count        int      `json:"count"`
}

// GetRobotStateOutput is the output for the get_robot_state tool
type GetRobotStateOutput struct {
	Connected  bool              `json:"connected"`
	Attributes *entity.Container `json:"attributes" jsonschema:"description=Class-tagged state attributes"`
}

// ZonePresetInput is the input for the create_zone_preset tool
type ZonePresetInput struct {
	ID    string        `json:"id,omitempty"`
	Name  string        `json:"name"`
	Zones []entity.Zone `json:"zones"`
}

// ResultOutput is the output for tools that only report success
type ResultOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
