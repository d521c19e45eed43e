package robot

import "errors"

var (
	// ErrNotConnected indicates the transport has no link to the robot
	ErrNotConnected = errors.New("robot not connected")

	// ErrTimeout indicates a command got no reply in time
	ErrTimeout = errors.New("operation timed out")

	// ErrConfigNotFound indicates no value is stored under a configuration key
	ErrConfigNotFound = errors.New("config key not found")

	// ErrPresetNotFound indicates a zone preset id is unknown
	ErrPresetNotFound = errors.New("zone preset not found")
)
