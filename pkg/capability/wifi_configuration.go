package capability

import (
	"context"
	"fmt"

	"github.com/urmzd/valetd/pkg/entity"
)

// WifiConfiguration reads and changes the robot's network connection.
type WifiConfiguration interface {
	Capability

	// GetWifiConfiguration returns the current connection. Not being connected
	// is reported in the result, not as an error.
	GetWifiConfiguration(ctx context.Context) (*entity.WifiConfiguration, error)

	// SetWifiConfiguration asks the robot to join another network.
	// It does not wait for the join to succeed.
	SetWifiConfiguration(ctx context.Context, cfg entity.WifiConfiguration) error
}

// UnimplementedWifiConfiguration provides not-implemented defaults.
type UnimplementedWifiConfiguration struct{}

func (UnimplementedWifiConfiguration) Type() Type { return TypeWifiConfiguration }

func (UnimplementedWifiConfiguration) GetWifiConfiguration(ctx context.Context) (*entity.WifiConfiguration, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedWifiConfiguration) SetWifiConfiguration(ctx context.Context, cfg entity.WifiConfiguration) error {
	return ErrNotImplemented
}

// ValidateWifiConfiguration checks that cfg names a network and carries
// WPA2-PSK credentials with a password.
func ValidateWifiConfiguration(cfg entity.WifiConfiguration) error {
	if cfg.SSID == "" {
		return fmt.Errorf("%w: ssid is required", ErrInvalidArgument)
	}
	if cfg.Credentials == nil || cfg.Credentials.Type != entity.WifiCredentialsWPA2PSK {
		return fmt.Errorf("%w: %s credentials are required", ErrInvalidArgument, entity.WifiCredentialsWPA2PSK)
	}
	if cfg.Credentials.Password() == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidArgument)
	}
	return nil
}
