package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/valetd/pkg/robot"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultPublishTimeout = 5 * time.Second
	mqttQoS               = byte(1)
)

// MQTTConfig configures the MQTT bridge transport.
type MQTTConfig struct {
	Broker   string // e.g. tcp://localhost:1883
	ClientID string
	Username string
	Password string
	// Topic is the prefix of the robot's topics. Requests are published to
	// <Topic>/command and replies are read from <Topic>/response.
	Topic   string
	Timeout time.Duration
}

func (c MQTTConfig) commandTopic() string  { return c.Topic + "/command" }
func (c MQTTConfig) responseTopic() string { return c.Topic + "/response" }

// MQTT implements robot.Transport through an MQTT bridge running on the robot.
//
// The response subscription is restored automatically after a reconnect.
type MQTT struct {
	client pahomqtt.Client
	cfg    MQTTConfig
	calls  *calls

	connected bool
	connMu    sync.RWMutex
}

// ConnectMQTT connects to the broker and subscribes to the response topic.
func ConnectMQTT(cfg MQTTConfig) (*MQTT, error) {
	if cfg.Topic == "" {
		return nil, fmt.Errorf("%w: mqtt topic is required", ErrConnectionFailed)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	m := &MQTT{cfg: cfg, calls: newCalls()}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(false).
		SetOrderMatters(false)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetOnConnectHandler(func(client pahomqtt.Client) {
		m.setConnected(true)
		token := client.Subscribe(cfg.responseTopic(), mqttQoS, func(_ pahomqtt.Client, msg pahomqtt.Message) {
			m.handleResponse(msg.Payload())
		})
		if token.WaitTimeout(defaultPublishTimeout) && token.Error() != nil {
			log.Error().Err(token.Error()).Str("topic", cfg.responseTopic()).Msg("MQTT subscribe failed")
		}
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		m.setConnected(false)
		m.calls.failAll()
		log.Warn().Err(err).Msg("MQTT connection lost")
	})

	m.client = pahomqtt.NewClient(opts)
	token := m.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	m.setConnected(true)

	log.Info().Str("broker", cfg.Broker).Str("topic", cfg.Topic).Msg("MQTT transport connected")

	return m, nil
}

// SendCommand publishes a request and waits for the matching reply.
func (m *MQTT) SendCommand(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if !m.IsConnected() {
		return nil, robot.ErrNotConnected
	}

	id, ch := m.calls.register()
	frame, err := encodeRequest(id, method, params)
	if err != nil {
		m.calls.cancel(id)
		return nil, err
	}

	token := m.client.Publish(m.cfg.commandTopic(), mqttQoS, false, frame)
	if !token.WaitTimeout(defaultPublishTimeout) {
		m.calls.cancel(id)
		return nil, fmt.Errorf("%w: publish %s", robot.ErrTimeout, method)
	}
	if err := token.Error(); err != nil {
		m.calls.cancel(id)
		return nil, fmt.Errorf("publish %s: %w", method, err)
	}

	return m.calls.wait(ctx, id, ch, m.cfg.Timeout)
}

// IsConnected returns true while the broker connection is up.
func (m *MQTT) IsConnected() bool {
	m.connMu.RLock()
	defer m.connMu.RUnlock()
	return m.connected
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	if m.client == nil {
		return nil
	}
	m.setConnected(false)
	m.client.Disconnect(250)
	m.calls.failAll()
	return nil
}

func (m *MQTT) setConnected(v bool) {
	m.connMu.Lock()
	m.connected = v
	m.connMu.Unlock()
}

// handleResponse routes a reply payload to its waiting request.
func (m *MQTT) handleResponse(payload []byte) {
	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		log.Warn().Err(err).Msg("Discarding malformed MQTT reply")
		return
	}
	if !m.calls.resolve(resp) {
		log.Debug().Uint64("id", resp.ID).Msg("Reply for unknown or expired request")
	}
}
