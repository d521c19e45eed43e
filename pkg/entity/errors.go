package entity

import "errors"

var (
	// ErrUnknownAttributeClass indicates a serialized attribute has an unrecognized class tag
	ErrUnknownAttributeClass = errors.New("unknown attribute class")

	// ErrInvalidZone indicates a zone is missing points or has a bad iteration count
	ErrInvalidZone = errors.New("invalid zone")

	// ErrInvalidPreset indicates a zone preset has no name or no zones
	ErrInvalidPreset = errors.New("invalid zone preset")
)
