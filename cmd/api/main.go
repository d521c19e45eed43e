package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/valetd/pkg/api"
	"github.com/urmzd/valetd/pkg/db"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/robot/roborock"
	"github.com/urmzd/valetd/pkg/schema"
	"github.com/urmzd/valetd/pkg/transport"

	_ "github.com/urmzd/valetd/docs"
)

// @title           valetd API
// @version         1.0
// @description     REST API for controlling a robot vacuum through its capabilities

// @host      localhost:8080
// @BasePath  /api/v2
// @schemes   http

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/valetd/valetd.db)")
	transportKind := flag.String("transport", "serial", "Robot transport: serial, mqtt or null")
	serialPort := flag.String("port", "/dev/ttyS4", "Path to the robot serial port")
	mqttBroker := flag.String("mqtt-broker", "tcp://localhost:1883", "MQTT broker URL")
	mqttTopic := flag.String("mqtt-topic", "valetd/robot", "MQTT topic prefix of the robot bridge")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open database
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

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
	}
	// Bootstrap only fills in missing keys, so it also runs after upgrades
	if err := database.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap database")
	}

	// Load configuration
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("implementation", cfg.Robot.Implementation).
		Str("timezone", cfg.Timezone()).
		Str("api_address", cfg.APIAddress()).
		Msg("Configuration loaded")

	link := openTransport(*transportKind, *serialPort, *mqttBroker, *mqttTopic)

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

	router := api.NewRouter(r, schema.NewValidator())
	log.Info().Strs("capabilities", router.Mounted()).Msg("Capabilities mounted")

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		cancel()
		if err := r.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close robot transport")
		}
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	addr := cfg.APIAddress()
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// openTransport connects to the robot, falling back to a null transport when
// the link is unavailable so the API still serves configuration routes.
func openTransport(kind, serialPort, broker, topic string) robot.Transport {
	switch kind {
	case "serial":
		t, err := transport.OpenSerial(serialPort, transport.DefaultTimeout)
		if err == nil {
			return t
		}
		log.Warn().Err(err).Str("port", serialPort).Msg("Serial transport unavailable, using null transport")
	case "mqtt":
		t, err := transport.ConnectMQTT(transport.MQTTConfig{
			Broker:   broker,
			ClientID: "valetd-api",
			Topic:    topic,
		})
		if err == nil {
			return t
		}
		log.Warn().Err(err).Str("broker", broker).Msg("MQTT transport unavailable, using null transport")
	case "null":
	default:
		log.Warn().Str("transport", kind).Msg("Unknown transport, using null transport")
	}
	return robot.NewNullTransport()
}
