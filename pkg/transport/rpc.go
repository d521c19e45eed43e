// Package transport implements robot.Transport over serial and MQTT links.
//
// Both links speak the same line-oriented JSON-RPC dialect used by the robot
// firmware: a request {"id", "method", "params"} is answered by a response
// carrying the same id and either "result" or "error".
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/urmzd/valetd/pkg/robot"
)

// DefaultTimeout bounds how long a command waits for its reply.
const DefaultTimeout = 10 * time.Second

// Request is a command sent to the robot.
type Request struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// Response is the robot's reply to a Request.
type Response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *RemoteError    `json:"error,omitempty"`

	// err is set locally when the link fails before a reply arrives
	err error
}

// RemoteError is an error reported by the robot firmware.
type RemoteError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("robot error %d: %s", e.Code, e.Message)
}

// Is makes errors.Is(err, ErrRemote) match any RemoteError.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// calls tracks requests awaiting a response.
type calls struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan Response
}

func newCalls() *calls {
	return &calls{pending: make(map[uint64]chan Response)}
}

// register allocates an id and the channel its response will arrive on.
func (c *calls) register() (uint64, chan Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	ch := make(chan Response, 1)
	c.pending[c.nextID] = ch
	return c.nextID, ch
}

// cancel forgets a pending request.
func (c *calls) cancel(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// resolve delivers resp to its waiter. It reports false for unknown ids.
func (c *calls) resolve(resp Response) bool {
	c.mu.Lock()
	ch, ok := c.pending[resp.ID]
	delete(c.pending, resp.ID)
	c.mu.Unlock()
	if !ok {
		return false
	}
	ch <- resp
	return true
}

// failAll answers every pending request with a not-connected error.
func (c *calls) failAll() {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[uint64]chan Response)
	c.mu.Unlock()
	for id, ch := range pending {
		ch <- Response{ID: id, err: robot.ErrNotConnected}
	}
}

// wait blocks until the response for id arrives, ctx ends or timeout elapses.
func (c *calls) wait(ctx context.Context, id uint64, ch chan Response, timeout time.Duration) (json.RawMessage, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case resp := <-ch:
		if resp.err != nil {
			return nil, resp.err
		}
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-timer.C:
		c.cancel(id)
		return nil, fmt.Errorf("%w: no reply to request %d after %v", robot.ErrTimeout, id, timeout)
	case <-ctx.Done():
		c.cancel(id)
		return nil, ctx.Err()
	}
}

// encodeRequest frames a request as a single JSON line.
func encodeRequest(id uint64, method string, params any) ([]byte, error) {
	data, err := json.Marshal(Request{ID: id, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", method, err)
	}
	return append(data, '\n'), nil
}
