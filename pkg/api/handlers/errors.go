package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/valetd/pkg/api/types"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/schema"
)

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{
		Error:   "not_found",
		Message: message,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}

// capabilityFailed maps an error returned by a capability operation to a response.
// Failures other than bad input are logged with the operation name.
func capabilityFailed(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, capability.ErrInvalidArgument):
		badRequest(c, err.Error())
		return
	case errors.Is(err, capability.ErrNotImplemented):
		c.JSON(http.StatusNotImplemented, types.ErrorResponse{
			Error:   "not_implemented",
			Message: err.Error(),
		})
		return
	}

	log.Warn().Err(err).Str("operation", operation).Msg("Capability operation failed")

	if errors.Is(err, robot.ErrNotConnected) {
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "not_connected",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   "capability_error",
		Message: err.Error(),
	})
}

func internalError(c *gin.Context, operation string, err error) {
	log.Error().Err(err).Str("operation", operation).Msg("Request failed")
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

// decodeValidated validates raw against schemaDoc and decodes it into dst.
// It writes a 400 response and returns false when either step fails.
func decodeValidated(c *gin.Context, v *schema.Validator, schemaDoc json.RawMessage, raw []byte, dst any) bool {
	if err := v.ValidateJSON(schemaDoc, raw); err != nil {
		badRequest(c, err.Error())
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		badRequest(c, "Invalid request body")
		return false
	}
	return true
}
