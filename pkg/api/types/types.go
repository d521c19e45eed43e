package types

import (
	"time"

	"github.com/urmzd/valetd/pkg/entity"
)

// --- Request DTOs ---

// ZonePresetRequest is the request body for POST /presets and POST /presets/:id
type ZonePresetRequest struct {
	ID    string        `json:"id,omitempty"`
	Name  string        `json:"name"`
	Zones []entity.Zone `json:"zones"`
}

// CleanPresetsRequest is the request body for PUT /presets
type CleanPresetsRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
}

// PresetActionRequest is the request body for PUT /presets/:id
type PresetActionRequest struct {
	Action string `json:"action"`
}

// CleanZonesRequest is the request body for PUT / on the zone cleaning capability
type CleanZonesRequest struct {
	Action string        `json:"action"`
	Zones  []entity.Zone `json:"zones"`
}

// LegacyZonePresetRequest is one element of the POST /presets_legacy body
type LegacyZonePresetRequest struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Areas [][]int `json:"areas"`
}

// ManualControlRequest is the request body for PUT / on the manual control capability
type ManualControlRequest struct {
	Action          string `json:"action"`
	MovementCommand string `json:"movementCommand,omitempty"`
}

// Supported request actions
const (
	ActionClean   = "clean"
	ActionEnable  = "enable"
	ActionDisable = "disable"
	ActionMove    = "move"
)

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// StatusResponse acknowledges a request without a resource body
type StatusResponse struct {
	Status string `json:"status"`
}

// OK is the body of a successful action
var OK = StatusResponse{Status: "ok"}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Transport string    `json:"transport"`
	Timestamp time.Time `json:"timestamp"`
}

// RobotResponse is returned from GET /api/v2/robot
type RobotResponse struct {
	Implementation string `json:"implementation"`
	Manufacturer   string `json:"manufacturer"`
	ModelName      string `json:"modelName"`
}

// StateResponse is returned from GET /api/v2/robot/state
type StateResponse struct {
	Attributes *entity.Container `json:"attributes"`
}
