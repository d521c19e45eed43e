package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/urmzd/valetd/pkg/robot"
)

// Config is the runtime configuration loaded from the database.
type Config struct {
	Webserver WebserverConfig
	Robot     RobotConfig
	TZ        string
	Embedded  bool
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	host, port := c.Webserver.Host, c.Webserver.Port
	if host == "" {
		host = "0.0.0.0"
	}
	if port == 0 {
		port = 8080
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Timezone returns the configured timezone.
func (c *Config) Timezone() string {
	if c.TZ == "" {
		return "UTC"
	}
	return c.TZ
}

// PollInterval returns the configured state poll interval, or zero when unset or invalid.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Robot.PollInterval)
	if err != nil {
		return 0
	}
	return d
}

// ActiveConfig loads the runtime configuration. Missing keys keep their zero value.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	config := &Config{}
	store := db.Config()

	load := []struct {
		key string
		dst any
	}{
		{robot.ConfigKeyWebserver, &config.Webserver},
		{robot.ConfigKeyRobot, &config.Robot},
		{robot.ConfigKeyTimezone, &config.TZ},
		{robot.ConfigKeyEmbedded, &config.Embedded},
	}
	for _, l := range load {
		if err := store.Get(ctx, l.key, l.dst); err != nil && !errors.Is(err, robot.ErrConfigNotFound) {
			return nil, fmt.Errorf("failed to load %s: %w", l.key, err)
		}
	}

	return config, nil
}
