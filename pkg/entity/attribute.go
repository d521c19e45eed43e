package entity

import (
	"encoding/json"
	"fmt"
)

// AttributeClass identifies the concrete kind of an Attribute.
type AttributeClass string

// Attribute classes
const (
	ClassStatusState          AttributeClass = "StatusStateAttribute"
	ClassBatteryState         AttributeClass = "BatteryStateAttribute"
	ClassConsumableState      AttributeClass = "ConsumableStateAttribute"
	ClassPresetSelectionState AttributeClass = "PresetSelectionStateAttribute"
	ClassAttachmentState      AttributeClass = "AttachmentStateAttribute"
)

const classFieldName = "__class"

// Attribute is one piece of observed device state.
// Its identity is the (class, type, subType) triple.
type Attribute interface {
	Class() AttributeClass
	AttributeType() string
	AttributeSubType() string
}

// Status values
const (
	StatusError     = "error"
	StatusDocked    = "docked"
	StatusIdle      = "idle"
	StatusReturning = "returning"
	StatusCleaning  = "cleaning"
	StatusPaused    = "paused"
	StatusManual    = "manual_control"
	StatusMoving    = "moving"
)

// Status flags
const (
	FlagNone      = "none"
	FlagZone      = "zone"
	FlagSegment   = "segment"
	FlagSpot      = "spot"
	FlagTarget    = "target"
	FlagResumable = "resumable"
)

// StatusStateAttribute is the robot's current activity.
type StatusStateAttribute struct {
	Value string `json:"value"`
	Flag  string `json:"flag"`
}

func (StatusStateAttribute) Class() AttributeClass   { return ClassStatusState }
func (StatusStateAttribute) AttributeType() string    { return "" }
func (StatusStateAttribute) AttributeSubType() string { return "" }

// Battery flags
const (
	BatteryFlagNone        = "none"
	BatteryFlagCharging    = "charging"
	BatteryFlagDischarging = "discharging"
	BatteryFlagCharged     = "charged"
)

// BatteryStateAttribute is the battery level in percent.
type BatteryStateAttribute struct {
	Level int    `json:"level"`
	Flag  string `json:"flag"`
}

func (BatteryStateAttribute) Class() AttributeClass   { return ClassBatteryState }
func (BatteryStateAttribute) AttributeType() string    { return "" }
func (BatteryStateAttribute) AttributeSubType() string { return "" }

// ConsumableRemaining is what is left of a consumable.
type ConsumableRemaining struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"` // "minutes" or "percent"
}

// ConsumableStateAttribute tracks wear parts such as brushes and filters.
type ConsumableStateAttribute struct {
	Type      string              `json:"type"`
	SubType   string              `json:"subType,omitempty"`
	Remaining ConsumableRemaining `json:"remaining"`
}

func (ConsumableStateAttribute) Class() AttributeClass     { return ClassConsumableState }
func (a ConsumableStateAttribute) AttributeType() string    { return a.Type }
func (a ConsumableStateAttribute) AttributeSubType() string { return a.SubType }

// Preset selection types
const (
	PresetTypeFanSpeed   = "fan_speed"
	PresetTypeWaterGrade = "water_grade"
)

// PresetSelectionStateAttribute is a selected intensity preset, e.g. fan speed.
type PresetSelectionStateAttribute struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	// CustomValue carries the raw vendor value when Value is "custom".
	CustomValue int `json:"customValue,omitempty"`
}

func (PresetSelectionStateAttribute) Class() AttributeClass     { return ClassPresetSelectionState }
func (a PresetSelectionStateAttribute) AttributeType() string    { return a.Type }
func (a PresetSelectionStateAttribute) AttributeSubType() string { return "" }

// AttachmentStateAttribute reports whether an accessory is attached.
type AttachmentStateAttribute struct {
	Type     string `json:"type"`
	Attached bool   `json:"attached"`
}

func (AttachmentStateAttribute) Class() AttributeClass     { return ClassAttachmentState }
func (a AttachmentStateAttribute) AttributeType() string    { return a.Type }
func (a AttachmentStateAttribute) AttributeSubType() string { return "" }

// marshalAttribute encodes an attribute with its class tag.
func marshalAttribute(a Attribute) (json.RawMessage, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields[classFieldName] = a.Class()
	return json.Marshal(fields)
}

// unmarshalAttribute decodes an attribute, dispatching on its class tag.
func unmarshalAttribute(data []byte) (Attribute, error) {
	var head struct {
		Class AttributeClass `json:"__class"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Class {
	case ClassStatusState:
		var a StatusStateAttribute
		err := json.Unmarshal(data, &a)
		return a, err
	case ClassBatteryState:
		var a BatteryStateAttribute
		err := json.Unmarshal(data, &a)
		return a, err
	case ClassConsumableState:
		var a ConsumableStateAttribute
		err := json.Unmarshal(data, &a)
		return a, err
	case ClassPresetSelectionState:
		var a PresetSelectionStateAttribute
		err := json.Unmarshal(data, &a)
		return a, err
	case ClassAttachmentState:
		var a AttachmentStateAttribute
		err := json.Unmarshal(data, &a)
		return a, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttributeClass, head.Class)
	}
}
