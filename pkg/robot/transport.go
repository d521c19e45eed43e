package robot

import (
	"context"
	"encoding/json"
)

// Transport carries commands to the robot firmware.
// This abstraction lets device families work over different links
// (serial, MQTT bridge, local socket) through one interface.
type Transport interface {
	// SendCommand invokes method with params and returns the raw result
	SendCommand(ctx context.Context, method string, params any) (json.RawMessage, error)

	// IsConnected returns true if the link to the robot is up
	IsConnected() bool

	// Close releases the link
	Close() error
}

// ConfigStore persists configuration values as JSON documents keyed by name.
type ConfigStore interface {
	// Get decodes the value stored under key into dst
	Get(ctx context.Context, key string, dst any) error

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value any) error
}

// Configuration keys
const (
	ConfigKeyZonePresets = "zonePresets"
	ConfigKeyEmbedded    = "embedded"
	ConfigKeyWebserver   = "webserver"
	ConfigKeyRobot       = "robot"
	ConfigKeyTimezone    = "timezone"
)
