package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/valetd/pkg/api/types"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
	"github.com/urmzd/valetd/pkg/schema"
)

// WifiConfigurationRouter exposes a WifiConfiguration capability.
type WifiConfigurationRouter struct {
	capability capability.WifiConfiguration
	validator  *schema.Validator
}

// NewWifiConfigurationRouter creates a router bound to wc.
func NewWifiConfigurationRouter(wc capability.WifiConfiguration, validator *schema.Validator) *WifiConfigurationRouter {
	return &WifiConfigurationRouter{capability: wc, validator: validator}
}

// InitRoutes registers the wifi routes on g.
func (h *WifiConfigurationRouter) InitRoutes(g *gin.RouterGroup) {
	g.GET("", h.Get)
	g.GET("/", h.Get)
	g.PUT("", h.Set)
	g.PUT("/", h.Set)
}

// Get handles GET /
// @Summary      Get the wifi configuration
// @Tags         WifiConfigurationCapability
// @Produce      json
// @Success      200  {object}  entity.WifiConfiguration
// @Failure      500  {object}  types.ErrorResponse
// @Failure      501  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Router       /robot/capabilities/WifiConfigurationCapability [get]
func (h *WifiConfigurationRouter) Get(c *gin.Context) {
	cfg, err := h.capability.GetWifiConfiguration(c.Request.Context())
	if err != nil {
		capabilityFailed(c, "get wifi configuration", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Set handles PUT /
// @Summary      Connect the robot to a wifi network
// @Description  The robot drops its current connection to try the new credentials.
// @Tags         WifiConfigurationCapability
// @Accept       json
// @Produce      json
// @Param        request  body      entity.WifiConfiguration  true  "Network and credentials"
// @Success      200      {object}  types.StatusResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Failure      501      {object}  types.ErrorResponse
// @Router       /robot/capabilities/WifiConfigurationCapability [put]
func (h *WifiConfigurationRouter) Set(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	var cfg entity.WifiConfiguration
	if !decodeValidated(c, h.validator, schema.WifiConfiguration, raw, &cfg) {
		return
	}

	if err := h.capability.SetWifiConfiguration(c.Request.Context(), cfg); err != nil {
		capabilityFailed(c, "set wifi configuration", err)
		return
	}

	c.JSON(http.StatusOK, types.OK)
}
