package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/valetd/pkg/api/types"
	"github.com/urmzd/valetd/pkg/robot"
)

// RobotHandler serves robot information and state.
type RobotHandler struct {
	robot *robot.Robot
}

// NewRobotHandler creates a new robot handler
func NewRobotHandler(r *robot.Robot) *RobotHandler {
	return &RobotHandler{robot: r}
}

// Info handles GET /robot
// @Summary      Robot information
// @Tags         robot
// @Produce      json
// @Success      200  {object}  types.RobotResponse
// @Router       /robot [get]
func (h *RobotHandler) Info(c *gin.Context) {
	info := h.robot.Info()
	c.JSON(http.StatusOK, types.RobotResponse{
		Implementation: info.Implementation,
		Manufacturer:   info.Manufacturer,
		ModelName:      info.ModelName,
	})
}

// Capabilities handles GET /robot/capabilities
// @Summary      List capability types
// @Description  Includes capabilities that have no REST routes.
// @Tags         robot
// @Produce      json
// @Success      200  {array}  string
// @Router       /robot/capabilities [get]
func (h *RobotHandler) Capabilities(c *gin.Context) {
	c.JSON(http.StatusOK, h.robot.Capabilities().Types())
}

// State handles GET /robot/state
// @Summary      Robot state
// @Tags         robot
// @Produce      json
// @Success      200  {object}  types.StateResponse
// @Router       /robot/state [get]
func (h *RobotHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, types.StateResponse{Attributes: h.robot.State()})
}

// Attributes handles GET /robot/state/attributes
// @Summary      Robot state attributes
// @Tags         robot
// @Produce      json
// @Success      200  {array}  object
// @Router       /robot/state/attributes [get]
func (h *RobotHandler) Attributes(c *gin.Context) {
	c.JSON(http.StatusOK, h.robot.State())
}
