package entity

// Wifi connection states
const (
	WifiStateUnknown      = "unknown"
	WifiStateConnected    = "connected"
	WifiStateNotConnected = "not_connected"
)

// Wifi frequency bands
const (
	WifiFrequency2_4GHz = "2.4ghz"
	WifiFrequency5GHz   = "5ghz"
)

// WifiCredentialsWPA2PSK is the only supported credentials type.
const WifiCredentialsWPA2PSK = "wpa2_psk"

// WifiCredentials holds the secret used to join a network.
type WifiCredentials struct {
	Type                 string            `json:"type"`
	TypeSpecificSettings map[string]string `json:"typeSpecificSettings,omitempty"`
}

// Password returns the WPA2-PSK password, if any.
func (c *WifiCredentials) Password() string {
	if c == nil || c.TypeSpecificSettings == nil {
		return ""
	}
	return c.TypeSpecificSettings["password"]
}

// WifiDetails describes the current connection.
type WifiDetails struct {
	State     string   `json:"state"`
	Signal    int      `json:"signal,omitempty"`
	IPs       []string `json:"ips,omitempty"`
	Frequency string   `json:"frequency,omitempty"`
}

// WifiConfiguration is the robot's network configuration.
type WifiConfiguration struct {
	SSID        string           `json:"ssid,omitempty"`
	Credentials *WifiCredentials `json:"credentials,omitempty"`
	Details     WifiDetails      `json:"details"`
}
