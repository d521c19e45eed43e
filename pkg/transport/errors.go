package transport

import "errors"

var (
	// ErrRemote matches any error reported by the robot firmware
	ErrRemote = errors.New("remote error")

	// ErrConnectionFailed indicates the initial connection could not be made
	ErrConnectionFailed = errors.New("connection failed")
)
