package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/valetd/pkg/api/types"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/schema"
)

// ManualControlRouter exposes a ManualControl capability.
type ManualControlRouter struct {
	capability capability.ManualControl
	validator  *schema.Validator
}

// NewManualControlRouter creates a router bound to mc.
func NewManualControlRouter(mc capability.ManualControl, validator *schema.Validator) *ManualControlRouter {
	return &ManualControlRouter{capability: mc, validator: validator}
}

// InitRoutes registers the manual control routes on g.
func (h *ManualControlRouter) InitRoutes(g *gin.RouterGroup) {
	g.PUT("", h.Control)
	g.PUT("/", h.Control)
}

// Control handles PUT /
// @Summary      Enter, leave or move in manual control mode
// @Tags         ManualControlCapability
// @Accept       json
// @Produce      json
// @Param        request  body      types.ManualControlRequest  true  "Action"
// @Success      200      {object}  types.StatusResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Failure      501      {object}  types.ErrorResponse
// @Router       /robot/capabilities/ManualControlCapability [put]
func (h *ManualControlRouter) Control(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	var req types.ManualControlRequest
	if !decodeValidated(c, h.validator, schema.ManualControl, raw, &req) {
		return
	}

	switch req.Action {
	case types.ActionEnable:
		err = h.capability.EnterManualControl(ctx)
	case types.ActionDisable:
		err = h.capability.LeaveManualControl(ctx)
	case types.ActionMove:
		err = h.capability.ManualControl(ctx, capability.MovementCommand(req.MovementCommand))
	}
	if err != nil {
		capabilityFailed(c, "manual control "+req.Action, err)
		return
	}

	c.JSON(http.StatusOK, types.OK)
}
