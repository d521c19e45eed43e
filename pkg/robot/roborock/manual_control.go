package roborock

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/robot"
)

// moveDurationMillis is how long a single step lasts.
const moveDurationMillis = 1000

// ManualControlCapability drives the robot with remote-control commands.
type ManualControlCapability struct {
	capability.UnimplementedManualControl
	robot  *robot.Robot
	seqnum atomic.Int64
}

// NewManualControlCapability creates the capability bound to r.
func NewManualControlCapability(r *robot.Robot) *ManualControlCapability {
	return &ManualControlCapability{robot: r}
}

// EnterManualControl sends app_rc_start.
func (c *ManualControlCapability) EnterManualControl(ctx context.Context) error {
	c.seqnum.Store(0)
	if _, err := c.robot.SendCommand(ctx, "app_rc_start", nil); err != nil {
		return fmt.Errorf("app_rc_start: %w", err)
	}
	return nil
}

// LeaveManualControl sends app_rc_end.
func (c *ManualControlCapability) LeaveManualControl(ctx context.Context) error {
	if _, err := c.robot.SendCommand(ctx, "app_rc_end", nil); err != nil {
		return fmt.Errorf("app_rc_end: %w", err)
	}
	return nil
}

// ManualControl sends one app_rc_move step.
func (c *ManualControlCapability) ManualControl(ctx context.Context, command capability.MovementCommand) error {
	var velocity, omega float64
	switch command {
	case capability.MoveForward:
		velocity = 0.3
	case capability.MoveBackward:
		velocity = -0.3
	case capability.MoveRotateClockwise:
		omega = -0.5
	case capability.MoveRotateCounterclockwise:
		omega = 0.5
	default:
		return fmt.Errorf("%w: unknown movement command %q", capability.ErrInvalidArgument, command)
	}

	_, err := c.robot.SendCommand(ctx, "app_rc_move", []map[string]any{{
		"omega":    omega,
		"velocity": velocity,
		"duration": moveDurationMillis,
		"seqnum":   c.seqnum.Add(1),
	}})
	if err != nil {
		return fmt.Errorf("app_rc_move: %w", err)
	}
	return nil
}
