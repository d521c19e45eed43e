package robot

import (
	"context"
	"encoding/json"
)

// NullTransport is a no-op transport used when no robot link is available.
// It allows the API to run in limited mode: configuration and presets work,
// device commands fail with ErrNotConnected.
type NullTransport struct{}

// NewNullTransport creates a new NullTransport.
func NewNullTransport() *NullTransport {
	return &NullTransport{}
}

func (t *NullTransport) SendCommand(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return nil, ErrNotConnected
}

func (t *NullTransport) IsConnected() bool {
	return false
}

func (t *NullTransport) Close() error {
	return nil
}
