package api

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/valetd/pkg/api/handlers"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/schema"
)

// ErrCapabilityMismatch indicates a registered capability does not implement
// the interface of its type tag.
var ErrCapabilityMismatch = errors.New("capability does not implement its type contract")

// CapabilityRouter serves the REST routes of one capability instance.
type CapabilityRouter interface {
	InitRoutes(g *gin.RouterGroup)
}

// RouterDeps are the shared collaborators handed to router factories.
type RouterDeps struct {
	Presets   *robot.ZonePresetStore
	Validator *schema.Validator
}

// RouterFactory builds the router for a capability.
type RouterFactory func(c capability.Capability, deps RouterDeps) (CapabilityRouter, error)

// capabilityRouters lists the capability types that have REST routes.
// Types missing here stay registry-only.
var capabilityRouters = map[capability.Type]RouterFactory{
	capability.TypeZoneCleaning: bind(func(zc capability.ZoneCleaning, d RouterDeps) CapabilityRouter {
		return handlers.NewZoneCleaningRouter(zc, d.Presets, d.Validator)
	}),
	capability.TypeWifiConfiguration: bind(func(wc capability.WifiConfiguration, d RouterDeps) CapabilityRouter {
		return handlers.NewWifiConfigurationRouter(wc, d.Validator)
	}),
	capability.TypeManualControl: bind(func(mc capability.ManualControl, d RouterDeps) CapabilityRouter {
		return handlers.NewManualControlRouter(mc, d.Validator)
	}),
}

// bind adapts a typed router constructor to a RouterFactory.
func bind[T capability.Capability](newRouter func(T, RouterDeps) CapabilityRouter) RouterFactory {
	return func(c capability.Capability, deps RouterDeps) (CapabilityRouter, error) {
		typed, ok := c.(T)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T", ErrCapabilityMismatch, c.Type(), c)
		}
		return newRouter(typed, deps), nil
	}
}

// MountCapabilities mounts a router for every registered capability that has
// a factory, under <group>/<Type>. It returns the mounted types in registry order.
func MountCapabilities(group *gin.RouterGroup, registry *capability.Registry, deps RouterDeps) []capability.Type {
	var mounted []capability.Type

	for _, c := range registry.All() {
		factory, ok := capabilityRouters[c.Type()]
		if !ok {
			log.Debug().Str("capability", string(c.Type())).Msg("No router for capability, registry-only")
			continue
		}

		router, err := factory(c, deps)
		if err != nil {
			log.Error().Err(err).Str("capability", string(c.Type())).Msg("Skipping capability router")
			continue
		}

		router.InitRoutes(group.Group("/" + string(c.Type())))
		mounted = append(mounted, c.Type())
		log.Debug().Str("capability", string(c.Type())).Msg("Capability router mounted")
	}

	return mounted
}
