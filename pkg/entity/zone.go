package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Point is a map coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ZonePoints are the four corners of an axis-aligned rectangle.
type ZonePoints struct {
	PA Point `json:"pA"`
	PB Point `json:"pB"`
	PC Point `json:"pC"`
	PD Point `json:"pD"`
}

// Zone is a rectangle to clean plus the number of passes.
type Zone struct {
	Points     ZonePoints `json:"points"`
	Iterations int        `json:"iterations"`
}

// NewZone creates a zone. Iterations below one default to a single pass.
func NewZone(points ZonePoints, iterations int) Zone {
	if iterations < 1 {
		iterations = 1
	}
	return Zone{Points: points, Iterations: iterations}
}

// LegacyArea is the deprecated array encoding of a zone:
// [x1, y1, x2, y2, iterations].
type LegacyArea [5]int

// ZoneFromLegacyArea builds a zone from pA=(x1,y1) and pC=(x2,y2).
func ZoneFromLegacyArea(area []int) (Zone, error) {
	if len(area) != len(LegacyArea{}) {
		return Zone{}, fmt.Errorf("%w: legacy area needs 5 values, got %d", ErrInvalidZone, len(area))
	}
	x1, y1, x2, y2 := area[0], area[1], area[2], area[3]
	return NewZone(ZonePoints{
		PA: Point{X: x1, Y: y1},
		PB: Point{X: x2, Y: y1},
		PC: Point{X: x2, Y: y2},
		PD: Point{X: x1, Y: y2},
	}, area[4]), nil
}

// LegacyArea encodes the zone as [pA.x, pA.y, pC.x, pC.y, iterations].
func (z Zone) LegacyArea() LegacyArea {
	return LegacyArea{z.Points.PA.X, z.Points.PA.Y, z.Points.PC.X, z.Points.PC.Y, z.Iterations}
}

// ZonePreset is a named, persisted set of zones.
type ZonePreset struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Zones []Zone `json:"zones"`
}

// NewZonePreset creates a preset, generating an id when none is given.
func NewZonePreset(id, name string, zones []Zone) (ZonePreset, error) {
	if name == "" {
		return ZonePreset{}, fmt.Errorf("%w: name is required", ErrInvalidPreset)
	}
	if len(zones) == 0 {
		return ZonePreset{}, fmt.Errorf("%w: at least one zone is required", ErrInvalidPreset)
	}
	if id == "" {
		id = uuid.New().String()
	}

	normalized := make([]Zone, len(zones))
	for i, z := range zones {
		normalized[i] = NewZone(z.Points, z.Iterations)
	}

	return ZonePreset{ID: id, Name: name, Zones: normalized}, nil
}

// LegacyZonePreset is the deprecated array-encoded preset form.
type LegacyZonePreset struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Areas []LegacyArea `json:"areas"`
}

// ToLegacy converts the preset to its legacy encoding.
func (p ZonePreset) ToLegacy() LegacyZonePreset {
	areas := make([]LegacyArea, len(p.Zones))
	for i, z := range p.Zones {
		areas[i] = z.LegacyArea()
	}
	return LegacyZonePreset{ID: p.ID, Name: p.Name, Areas: areas}
}

// FlattenZones concatenates the zones of presets in order.
// Zones shared between presets are kept, so their iterations compound.
func FlattenZones(presets []ZonePreset) []Zone {
	var zones []Zone
	for _, p := range presets {
		zones = append(zones, p.Zones...)
	}
	return zones
}
