package capability

import "context"

// MovementCommand is a single manual control step.
type MovementCommand string

// Movement commands
const (
	MoveForward                MovementCommand = "forward"
	MoveBackward               MovementCommand = "backward"
	MoveRotateClockwise        MovementCommand = "rotate_clockwise"
	MoveRotateCounterclockwise MovementCommand = "rotate_counterclockwise"
)

// Valid reports whether m is a known movement command.
func (m MovementCommand) Valid() bool {
	switch m {
	case MoveForward, MoveBackward, MoveRotateClockwise, MoveRotateCounterclockwise:
		return true
	}
	return false
}

// ManualControl lets a user drive the robot directly.
type ManualControl interface {
	Capability

	// EnterManualControl switches the robot into manual mode
	EnterManualControl(ctx context.Context) error

	// LeaveManualControl returns the robot to normal operation
	LeaveManualControl(ctx context.Context) error

	// ManualControl performs one movement step
	ManualControl(ctx context.Context, command MovementCommand) error
}

// UnimplementedManualControl provides not-implemented defaults.
type UnimplementedManualControl struct{}

func (UnimplementedManualControl) Type() Type { return TypeManualControl }

func (UnimplementedManualControl) EnterManualControl(ctx context.Context) error {
	return ErrNotImplemented
}

func (UnimplementedManualControl) LeaveManualControl(ctx context.Context) error {
	return ErrNotImplemented
}

func (UnimplementedManualControl) ManualControl(ctx context.Context, command MovementCommand) error {
	return ErrNotImplemented
}
