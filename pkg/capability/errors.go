package capability

import "errors"

var (
	// ErrNotImplemented indicates the device family does not provide this operation
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidArgument indicates an operation rejected its input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateCapability indicates a capability type is already registered
	ErrDuplicateCapability = errors.New("capability already registered")
)
