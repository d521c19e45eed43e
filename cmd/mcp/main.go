package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/valetd/pkg/db"
	valetmcp "github.com/urmzd/valetd/pkg/mcp"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/robot/roborock"
	"github.com/urmzd/valetd/pkg/schema"
	"github.com/urmzd/valetd/pkg/transport"
)

func main() {
	// stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/valetd/valetd.db)")
	transportKind := flag.String("transport", "null", "Robot transport: serial, mqtt or null")
	serialPort := flag.String("port", "/dev/ttyS4", "Path to the robot serial port")
	mqttBroker := flag.String("mqtt-broker", "tcp://localhost:1883", "MQTT broker URL")
	mqttTopic := flag.String("mqtt-topic", "valetd/robot", "MQTT topic prefix of the robot bridge")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	if err := database.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap database")
	}

	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var link robot.Transport
	switch *transportKind {
	case "serial":
		link, err = transport.OpenSerial(*serialPort, transport.DefaultTimeout)
	case "mqtt":
		link, err = transport.ConnectMQTT(transport.MQTTConfig{
			Broker:   *mqttBroker,
			ClientID: "valetd-mcp",
			Topic:    *mqttTopic,
		})
	}
	if err != nil || link == nil {
		if *transportKind != "null" {
			log.Warn().Err(err).Str("transport", *transportKind).Msg("Robot transport unavailable, using null transport")
		}
		link = robot.NewNullTransport()
	}

	r, err := roborock.New(link, database.Config())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create robot")
	}
	defer func() {
		if err := r.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close robot transport")
		}
	}()

	go roborock.PollState(ctx, r, cfg.PollInterval())

	mcpServer := valetmcp.NewServer(r, schema.NewValidator())

	log.Info().Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
