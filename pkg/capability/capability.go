// Package capability defines the optional behaviors a robot can support.
//
// Each capability kind is an interface with a fixed type tag. Device families
// implement a kind by embedding its Unimplemented struct and overriding the
// operations they actually support; everything else returns ErrNotImplemented.
package capability

// Type is the tag that identifies a capability kind.
type Type string

// Capability types
const (
	TypeManualControl     Type = "ManualControlCapability"
	TypeWifiConfiguration Type = "WifiConfigurationCapability"
	TypeZoneCleaning      Type = "ZoneCleaningCapability"
)

// Capability is implemented by every capability kind.
type Capability interface {
	// Type returns the capability's constant type tag
	Type() Type
}
