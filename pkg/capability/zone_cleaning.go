package capability

import (
	"context"

	"github.com/urmzd/valetd/pkg/entity"
)

// ZoneCleaning cleans rectangular areas of the map.
type ZoneCleaning interface {
	Capability

	// Start runs one cleaning job over all zones, in order
	Start(ctx context.Context, zones []entity.Zone) error
}

// UnimplementedZoneCleaning provides not-implemented defaults.
type UnimplementedZoneCleaning struct{}

func (UnimplementedZoneCleaning) Type() Type { return TypeZoneCleaning }

func (UnimplementedZoneCleaning) Start(ctx context.Context, zones []entity.Zone) error {
	return ErrNotImplemented
}
