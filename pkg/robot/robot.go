package robot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
)

// Info describes the robot model.
type Info struct {
	Implementation string `json:"implementation"`
	Manufacturer   string `json:"manufacturer"`
	ModelName      string `json:"modelName"`
}

// Robot is the device that owns a set of capabilities.
// Capabilities keep a back-reference to it for transport and configuration access.
type Robot struct {
	info      Info
	transport Transport
	config    ConfigStore
	caps      *capability.Registry

	state   *entity.Container
	stateMu sync.RWMutex
}

// New creates a robot with an empty capability registry.
func New(info Info, transport Transport, config ConfigStore) *Robot {
	if transport == nil {
		transport = NewNullTransport()
	}
	return &Robot{
		info:      info,
		transport: transport,
		config:    config,
		caps:      capability.NewRegistry(),
		state:     entity.NewContainer(),
	}
}

// Info returns the robot model information.
func (r *Robot) Info() Info {
	return r.info
}

// Config returns the configuration store.
func (r *Robot) Config() ConfigStore {
	return r.config
}

// Capabilities returns the capability registry.
func (r *Robot) Capabilities() *capability.Registry {
	return r.caps
}

// RegisterCapabilities adds caps to the registry, stopping at the first error.
func (r *Robot) RegisterCapabilities(caps ...capability.Capability) error {
	for _, c := range caps {
		if err := r.caps.Register(c); err != nil {
			return fmt.Errorf("register %s: %w", c.Type(), err)
		}
		log.Debug().Str("capability", string(c.Type())).Msg("Capability registered")
	}
	return nil
}

// IsConnected returns true if the transport link is up.
func (r *Robot) IsConnected() bool {
	return r.transport.IsConnected()
}

// SendCommand forwards a command to the robot firmware.
func (r *Robot) SendCommand(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return r.transport.SendCommand(ctx, method, params)
}

// UpdateState upserts freshly observed attributes into the robot state.
func (r *Robot) UpdateState(attrs ...entity.Attribute) {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	for _, a := range attrs {
		r.state.UpsertFirstMatching(a)
	}
}

// State returns a snapshot of the robot state.
func (r *Robot) State() *entity.Container {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	return entity.NewContainer(r.state.Attributes()...)
}

// Embedded reports whether the daemon runs on the robot itself.
func (r *Robot) Embedded(ctx context.Context) bool {
	var embedded bool
	if r.config == nil {
		return false
	}
	if err := r.config.Get(ctx, ConfigKeyEmbedded, &embedded); err != nil {
		return false
	}
	return embedded
}

// Close closes the transport.
func (r *Robot) Close() error {
	return r.transport.Close()
}
