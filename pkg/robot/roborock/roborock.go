// Package roborock implements the capabilities of Roborock vacuum robots,
// which are driven through miIO-style commands.
package roborock

import (
	"encoding/json"
	"fmt"

	"github.com/urmzd/valetd/pkg/robot"
)

// Implementation is the family name reported in robot info.
const Implementation = "RoborockS5ValetudoRobot"

// New creates a Roborock robot and registers the capabilities the family supports.
func New(transport robot.Transport, config robot.ConfigStore) (*robot.Robot, error) {
	r := robot.New(robot.Info{
		Implementation: Implementation,
		Manufacturer:   "Roborock",
		ModelName:      "S5",
	}, transport, config)

	err := r.RegisterCapabilities(
		NewWifiConfigurationCapability(r),
		NewZoneCleaningCapability(r),
		NewManualControlCapability(r),
	)
	if err != nil {
		return nil, fmt.Errorf("roborock: %w", err)
	}

	return r, nil
}

// unwrapResult returns the first element when the firmware wraps its
// result in a single-element array, as most miIO replies do.
func unwrapResult(raw json.RawMessage) json.RawMessage {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		return arr[0]
	}
	return raw
}

// isUnknownMethod reports whether the firmware rejected the command as unknown.
func isUnknownMethod(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(unwrapResult(raw), &s); err != nil {
		return false
	}
	return s == "unknown_method"
}
