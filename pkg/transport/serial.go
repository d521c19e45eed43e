package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/valetd/pkg/robot"
	"go.bug.st/serial"
)

// maxLineSize bounds a single response line.
const maxLineSize = 1 << 20

// Serial implements robot.Transport over a serial connection to the robot mainboard.
type Serial struct {
	port    io.ReadWriteCloser
	writeMu sync.Mutex
	calls   *calls
	timeout time.Duration

	connected atomic.Bool
	done      chan struct{}
}

// OpenSerial opens the serial port at 115200 baud, 8N1, and starts reading replies.
func OpenSerial(portPath string, timeout time.Duration) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portPath, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: open serial port %s: %w", ErrConnectionFailed, portPath, err)
	}

	log.Info().Str("port", portPath).Msg("Serial port opened")

	return NewSerial(port, timeout), nil
}

// NewSerial wraps an already open stream. A zero timeout selects DefaultTimeout.
func NewSerial(port io.ReadWriteCloser, timeout time.Duration) *Serial {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &Serial{
		port:    port,
		calls:   newCalls(),
		timeout: timeout,
		done:    make(chan struct{}),
	}
	s.connected.Store(true)
	go s.readLoop()
	return s
}

// SendCommand writes a request line and waits for the matching reply.
func (s *Serial) SendCommand(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if !s.IsConnected() {
		return nil, robot.ErrNotConnected
	}

	id, ch := s.calls.register()
	frame, err := encodeRequest(id, method, params)
	if err != nil {
		s.calls.cancel(id)
		return nil, err
	}

	s.writeMu.Lock()
	_, err = s.port.Write(frame)
	s.writeMu.Unlock()
	if err != nil {
		s.calls.cancel(id)
		return nil, fmt.Errorf("write %s: %w", method, err)
	}

	log.Debug().Uint64("id", id).Str("method", method).Msg("Serial command sent")

	return s.calls.wait(ctx, id, ch, s.timeout)
}

// IsConnected returns true until the port fails or is closed.
func (s *Serial) IsConnected() bool {
	return s.connected.Load()
}

// Close closes the port and fails all pending commands.
func (s *Serial) Close() error {
	s.connected.Store(false)
	err := s.port.Close()
	<-s.done
	return err
}

// readLoop decodes one response per line until the port fails.
func (s *Serial) readLoop() {
	defer close(s.done)
	defer s.calls.failAll()
	defer s.connected.Store(false)

	scanner := bufio.NewScanner(s.port)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp Response
		if err := json.Unmarshal(line, &resp); err != nil {
			log.Warn().Err(err).Str("line", string(line)).Msg("Discarding malformed serial frame")
			continue
		}
		if !s.calls.resolve(resp) {
			log.Debug().Uint64("id", resp.ID).Msg("Reply for unknown or expired request")
		}
	}

	if err := scanner.Err(); err != nil && s.IsConnected() {
		log.Error().Err(err).Msg("Serial read failed")
	}
}
