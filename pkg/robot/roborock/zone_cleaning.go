package roborock

import (
	"context"
	"fmt"

	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
	"github.com/urmzd/valetd/pkg/robot"
)

// ZoneCleaningCapability starts zoned cleanups.
type ZoneCleaningCapability struct {
	capability.UnimplementedZoneCleaning
	robot *robot.Robot
}

// NewZoneCleaningCapability creates the capability bound to r.
func NewZoneCleaningCapability(r *robot.Robot) *ZoneCleaningCapability {
	return &ZoneCleaningCapability{robot: r}
}

// Start sends all zones as one app_zoned_clean job.
func (c *ZoneCleaningCapability) Start(ctx context.Context, zones []entity.Zone) error {
	if len(zones) == 0 {
		return fmt.Errorf("%w: no zones given", capability.ErrInvalidArgument)
	}

	areas := make([]entity.LegacyArea, len(zones))
	for i, z := range zones {
		areas[i] = z.LegacyArea()
	}

	if _, err := c.robot.SendCommand(ctx, "app_zoned_clean", areas); err != nil {
		return fmt.Errorf("app_zoned_clean: %w", err)
	}
	return nil
}
