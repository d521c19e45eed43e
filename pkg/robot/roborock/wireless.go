package roborock

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"

	"github.com/urmzd/valetd/pkg/entity"
)

// readEmbeddedWifiConfiguration reads the connection of a local interface
// using `iw` and the interface's addresses.
func readEmbeddedWifiConfiguration(ctx context.Context, iface string) (*entity.WifiConfiguration, error) {
	out, err := exec.CommandContext(ctx, "iw", "dev", iface, "link").Output()
	if err != nil {
		return nil, fmt.Errorf("iw dev %s link: %w", iface, err)
	}

	cfg := parseIwLink(string(out))
	if cfg.Details.State == entity.WifiStateConnected {
		cfg.Details.IPs = interfaceIPs(iface)
	}
	return cfg, nil
}

// parseIwLink parses the output of `iw dev <iface> link`.
func parseIwLink(out string) *entity.WifiConfiguration {
	cfg := &entity.WifiConfiguration{Details: entity.WifiDetails{State: entity.WifiStateUnknown}}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "Not connected"):
			cfg.Details.State = entity.WifiStateNotConnected
		case strings.HasPrefix(line, "Connected to"):
			cfg.Details.State = entity.WifiStateConnected
		case strings.HasPrefix(line, "SSID:"):
			cfg.SSID = strings.TrimSpace(strings.TrimPrefix(line, "SSID:"))
		case strings.HasPrefix(line, "freq:"):
			freq, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "freq:")), 64)
			if err != nil {
				continue
			}
			if freq >= 5000 {
				cfg.Details.Frequency = entity.WifiFrequency5GHz
			} else {
				cfg.Details.Frequency = entity.WifiFrequency2_4GHz
			}
		case strings.HasPrefix(line, "signal:"):
			fields := strings.Fields(strings.TrimPrefix(line, "signal:"))
			if len(fields) > 0 {
				if n, err := strconv.Atoi(fields[0]); err == nil {
					cfg.Details.Signal = n
				}
			}
		}
	}

	return cfg
}

// interfaceIPs lists the addresses assigned to iface.
func interfaceIPs(iface string) []string {
	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return nil
	}
	addrs, err := ifi.Addrs()
	if err != nil {
		return nil
	}

	var ips []string
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok {
			ips = append(ips, ipnet.IP.String())
		}
	}
	return ips
}
