package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/urmzd/valetd/pkg/robot"
)

// WebserverConfig is stored under robot.ConfigKeyWebserver.
type WebserverConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// RobotConfig is stored under robot.ConfigKeyRobot.
type RobotConfig struct {
	Implementation string `json:"implementation"`
	PollInterval   string `json:"pollInterval,omitempty"`
}

// Bootstrap seeds default values for every key that is not yet stored.
// Existing values are never overwritten.
func (db *DB) Bootstrap(ctx context.Context) error {
	defaults := []struct {
		key   string
		value any
	}{
		{robot.ConfigKeyZonePresets, map[string]any{}},
		{robot.ConfigKeyEmbedded, false},
		{robot.ConfigKeyWebserver, WebserverConfig{Host: "0.0.0.0", Port: 8080}},
		{robot.ConfigKeyRobot, RobotConfig{Implementation: "roborock"}},
		{robot.ConfigKeyTimezone, detectTimezone()},
	}

	store := db.Config()
	for _, d := range defaults {
		_, err := store.Entry(ctx, d.key)
		if err == nil {
			continue
		}
		if !errors.Is(err, robot.ErrConfigNotFound) {
			return fmt.Errorf("failed to check %s: %w", d.key, err)
		}
		if err := store.Set(ctx, d.key, d.value); err != nil {
			return fmt.Errorf("failed to seed %s: %w", d.key, err)
		}
	}

	return nil
}

// NeedsBootstrap returns true if no configuration has been stored yet.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM config_entries`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// detectTimezone attempts to detect the system timezone.
func detectTimezone() string {
	if runtime.GOOS == "linux" {
		if out, err := exec.Command("timedatectl", "show", "--property=Timezone", "--value").Output(); err == nil {
			if tz := strings.TrimSpace(string(out)); tz != "" {
				return tz
			}
		}
		if data, err := os.ReadFile("/etc/timezone"); err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	if link, err := os.Readlink("/etc/localtime"); err == nil {
		if idx := strings.Index(link, "zoneinfo/"); idx != -1 {
			return link[idx+9:]
		}
	}

	return "UTC"
}
