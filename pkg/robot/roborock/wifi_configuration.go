package roborock

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
	"github.com/urmzd/valetd/pkg/robot"
)

const embeddedInterface = "wlan0"

// WifiConfigurationCapability reads and changes the robot's wifi connection.
type WifiConfigurationCapability struct {
	capability.UnimplementedWifiConfiguration
	robot *robot.Robot

	// readEmbedded reads the local interface when running on the robot
	readEmbedded func(ctx context.Context, iface string) (*entity.WifiConfiguration, error)
}

// NewWifiConfigurationCapability creates the capability bound to r.
func NewWifiConfigurationCapability(r *robot.Robot) *WifiConfigurationCapability {
	return &WifiConfigurationCapability{robot: r, readEmbedded: readEmbeddedWifiConfiguration}
}

// networkInfo is the reply to get_network_info.
type networkInfo struct {
	SSID  string          `json:"ssid"`
	IP    string          `json:"ip"`
	BSSID string          `json:"bssid"`
	RSSI  json.RawMessage `json:"rssi"`
}

// GetWifiConfiguration queries the current connection.
func (c *WifiConfigurationCapability) GetWifiConfiguration(ctx context.Context) (*entity.WifiConfiguration, error) {
	if c.robot.Embedded(ctx) {
		return c.readEmbedded(ctx, embeddedInterface)
	}

	cfg := &entity.WifiConfiguration{Details: entity.WifiDetails{State: entity.WifiStateUnknown}}

	raw, err := c.robot.SendCommand(ctx, "get_network_info", nil)
	if err != nil {
		return nil, fmt.Errorf("get_network_info: %w", err)
	}
	if isUnknownMethod(raw) {
		return cfg, nil
	}

	var info networkInfo
	if err := json.Unmarshal(unwrapResult(raw), &info); err != nil || info.BSSID == "" {
		cfg.Details.State = entity.WifiStateNotConnected
		return cfg, nil
	}

	cfg.SSID = info.SSID
	cfg.Details = entity.WifiDetails{
		State:     entity.WifiStateConnected,
		Signal:    parseRSSI(info.RSSI),
		IPs:       []string{info.IP},
		Frequency: entity.WifiFrequency2_4GHz,
	}
	return cfg, nil
}

// SetWifiConfiguration sends the new credentials to the robot.
// The robot drops its current connection to try them; success is not verified.
func (c *WifiConfigurationCapability) SetWifiConfiguration(ctx context.Context, cfg entity.WifiConfiguration) error {
	if err := capability.ValidateWifiConfiguration(cfg); err != nil {
		return err
	}

	_, err := c.robot.SendCommand(ctx, "miIO.config_router", map[string]any{
		"ssid":   cfg.SSID,
		"passwd": cfg.Credentials.Password(),
		"uid":    0,
	})
	if err != nil {
		return fmt.Errorf("miIO.config_router: %w", err)
	}
	return nil
}

// parseRSSI accepts the signal as a number or a numeric string.
func parseRSSI(raw json.RawMessage) int {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}
