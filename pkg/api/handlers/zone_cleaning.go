package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/valetd/pkg/api/types"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/schema"
)

// ZoneCleaningRouter exposes a ZoneCleaning capability and the zone presets it cleans.
type ZoneCleaningRouter struct {
	capability capability.ZoneCleaning
	presets    *robot.ZonePresetStore
	validator  *schema.Validator
}

// NewZoneCleaningRouter creates a router bound to zc.
func NewZoneCleaningRouter(zc capability.ZoneCleaning, presets *robot.ZonePresetStore, validator *schema.Validator) *ZoneCleaningRouter {
	return &ZoneCleaningRouter{capability: zc, presets: presets, validator: validator}
}

// InitRoutes registers the zone cleaning routes on g.
func (h *ZoneCleaningRouter) InitRoutes(g *gin.RouterGroup) {
	g.GET("/presets", h.ListPresets)
	g.PUT("/presets", h.CleanPresets)
	g.POST("/presets", h.CreatePreset)
	g.GET("/presets/:id", h.GetPreset)
	g.PUT("/presets/:id", h.CleanPreset)
	g.POST("/presets/:id", h.UpdatePreset)
	g.DELETE("/presets/:id", h.DeletePreset)

	// Deprecated array encoding
	g.GET("/presets_legacy", h.ListLegacyPresets)
	g.POST("/presets_legacy", h.ReplaceLegacyPresets)

	g.PUT("", h.CleanZones)
	g.PUT("/", h.CleanZones)
}

// ListPresets handles GET /presets
// @Summary      List zone presets
// @Tags         ZoneCleaningCapability
// @Produce      json
// @Success      200  {object}  map[string]entity.ZonePreset
// @Failure      500  {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability/presets [get]
func (h *ZoneCleaningRouter) ListPresets(c *gin.Context) {
	presets, err := h.presets.List(c.Request.Context())
	if err != nil {
		internalError(c, "list zone presets", err)
		return
	}
	c.JSON(http.StatusOK, presets)
}

// CleanPresets handles PUT /presets
// @Summary      Clean one or more zone presets
// @Description  All ids must resolve before cleaning starts. Zones of all presets run as a single job.
// @Tags         ZoneCleaningCapability
// @Accept       json
// @Produce      json
// @Param        request  body      types.CleanPresetsRequest  true  "Presets to clean"
// @Success      200      {object}  types.StatusResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid ids or unknown preset"
// @Failure      404      {object}  types.ErrorResponse  "Unsupported action"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability/presets [put]
func (h *ZoneCleaningRouter) CleanPresets(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	var action types.PresetActionRequest
	_ = json.Unmarshal(raw, &action)
	if action.Action != types.ActionClean {
		notFound(c, fmt.Sprintf("Unsupported action %q", action.Action))
		return
	}

	var req types.CleanPresetsRequest
	if !decodeValidated(c, h.validator, schema.CleanPresets, raw, &req) {
		return
	}

	presets, err := h.presets.Resolve(ctx, req.IDs)
	if err != nil {
		if errors.Is(err, robot.ErrPresetNotFound) {
			badRequest(c, err.Error())
			return
		}
		internalError(c, "resolve zone presets", err)
		return
	}

	if err := h.capability.Start(ctx, entity.FlattenZones(presets)); err != nil {
		capabilityFailed(c, "start zone cleaning for presets", err)
		return
	}

	c.JSON(http.StatusOK, types.OK)
}

// CreatePreset handles POST /presets
// @Summary      Create a zone preset
// @Description  An id is generated when none is given. An existing preset with the same id is overwritten.
// @Tags         ZoneCleaningCapability
// @Accept       json
// @Produce      json
// @Param        request  body      types.ZonePresetRequest  true  "Preset"
// @Success      201      {object}  entity.ZonePreset
// @Failure      400      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability/presets [post]
func (h *ZoneCleaningRouter) CreatePreset(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	var req types.ZonePresetRequest
	if !decodeValidated(c, h.validator, schema.ZonePreset, raw, &req) {
		return
	}

	preset, err := entity.NewZonePreset(req.ID, req.Name, req.Zones)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.presets.Put(c.Request.Context(), preset); err != nil {
		internalError(c, "save zone preset", err)
		return
	}

	c.JSON(http.StatusCreated, preset)
}

// GetPreset handles GET /presets/:id
// @Summary      Get a zone preset
// @Tags         ZoneCleaningCapability
// @Produce      json
// @Param        id   path      string  true  "Preset id"
// @Success      200  {object}  entity.ZonePreset
// @Failure      404  {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability/presets/{id} [get]
func (h *ZoneCleaningRouter) GetPreset(c *gin.Context) {
	preset, err := h.presets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, robot.ErrPresetNotFound) {
			notFound(c, "Zone preset not found")
			return
		}
		internalError(c, "get zone preset", err)
		return
	}
	c.JSON(http.StatusOK, preset)
}

// CleanPreset handles PUT /presets/:id
// @Summary      Clean a zone preset
// @Tags         ZoneCleaningCapability
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Preset id"
// @Param        request  body      types.PresetActionRequest  true  "Action"
// @Success      200      {object}  types.StatusResponse
// @Failure      404      {object}  types.ErrorResponse  "Unknown preset or unsupported action"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability/presets/{id} [put]
func (h *ZoneCleaningRouter) CleanPreset(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	preset, err := h.presets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, robot.ErrPresetNotFound) {
			notFound(c, "Zone preset not found")
			return
		}
		internalError(c, "get zone preset", err)
		return
	}

	var req types.PresetActionRequest
	_ = c.ShouldBindJSON(&req)
	if req.Action != types.ActionClean {
		notFound(c, fmt.Sprintf("Unsupported action %q", req.Action))
		return
	}

	if err := h.capability.Start(ctx, preset.Zones); err != nil {
		capabilityFailed(c, "start zone cleaning for preset "+id, err)
		return
	}

	c.JSON(http.StatusOK, types.OK)
}

// UpdatePreset handles POST /presets/:id
// @Summary      Replace a zone preset
// @Description  Name and zones are replaced; the id stays the path parameter.
// @Tags         ZoneCleaningCapability
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Preset id"
// @Param        request  body      types.ZonePresetRequest  true  "Preset"
// @Success      200      {object}  entity.ZonePreset
// @Failure      400      {object}  types.ErrorResponse
// @Failure      404      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability/presets/{id} [post]
func (h *ZoneCleaningRouter) UpdatePreset(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	exists, err := h.presets.Exists(ctx, id)
	if err != nil {
		internalError(c, "get zone preset", err)
		return
	}
	if !exists {
		notFound(c, "Zone preset not found")
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	var req types.ZonePresetRequest
	if !decodeValidated(c, h.validator, schema.ZonePreset, raw, &req) {
		return
	}

	preset, err := entity.NewZonePreset(id, req.Name, req.Zones)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.presets.Put(ctx, preset); err != nil {
		internalError(c, "save zone preset", err)
		return
	}

	c.JSON(http.StatusOK, preset)
}

// DeletePreset handles DELETE /presets/:id
// @Summary      Delete a zone preset
// @Tags         ZoneCleaningCapability
// @Produce      json
// @Param        id   path      string  true  "Preset id"
// @Success      200  {object}  types.StatusResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability/presets/{id} [delete]
func (h *ZoneCleaningRouter) DeletePreset(c *gin.Context) {
	if err := h.presets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, robot.ErrPresetNotFound) {
			notFound(c, "Zone preset not found")
			return
		}
		internalError(c, "delete zone preset", err)
		return
	}
	c.JSON(http.StatusOK, types.OK)
}

// ListLegacyPresets handles GET /presets_legacy
// @Summary      List zone presets in the legacy array encoding
// @Description  Deprecated.
// @Tags         ZoneCleaningCapability
// @Produce      json
// @Success      200  {array}   entity.LegacyZonePreset
// @Failure      500  {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability/presets_legacy [get]
func (h *ZoneCleaningRouter) ListLegacyPresets(c *gin.Context) {
	presets, err := h.presets.List(c.Request.Context())
	if err != nil {
		internalError(c, "list zone presets", err)
		return
	}

	ids := make([]string, 0, len(presets))
	for id := range presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	legacy := make([]entity.LegacyZonePreset, 0, len(ids))
	for _, id := range ids {
		legacy = append(legacy, presets[id].ToLegacy())
	}
	c.JSON(http.StatusOK, legacy)
}

// ReplaceLegacyPresets handles POST /presets_legacy
// @Summary      Replace all zone presets from the legacy array encoding
// @Description  Deprecated. Every preset is validated before the stored presets are replaced.
// @Tags         ZoneCleaningCapability
// @Accept       json
// @Produce      json
// @Param        request  body      []types.LegacyZonePresetRequest  true  "Presets"
// @Success      201      {object}  types.StatusResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability/presets_legacy [post]
func (h *ZoneCleaningRouter) ReplaceLegacyPresets(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	var req []types.LegacyZonePresetRequest
	if !decodeValidated(c, h.validator, schema.LegacyPresets, raw, &req) {
		return
	}

	presets := make([]entity.ZonePreset, 0, len(req))
	for _, lp := range req {
		zones := make([]entity.Zone, 0, len(lp.Areas))
		for _, area := range lp.Areas {
			z, err := entity.ZoneFromLegacyArea(area)
			if err != nil {
				badRequest(c, err.Error())
				return
			}
			zones = append(zones, z)
		}

		p, err := entity.NewZonePreset(lp.ID, lp.Name, zones)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		presets = append(presets, p)
	}

	if err := h.presets.ReplaceAll(c.Request.Context(), presets); err != nil {
		internalError(c, "replace zone presets", err)
		return
	}

	c.JSON(http.StatusCreated, types.OK)
}

// CleanZones handles PUT /
// @Summary      Clean zones
// @Tags         ZoneCleaningCapability
// @Accept       json
// @Produce      json
// @Param        request  body      types.CleanZonesRequest  true  "Zones to clean"
// @Success      200      {object}  types.StatusResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Failure      501      {object}  types.ErrorResponse
// @Router       /robot/capabilities/ZoneCleaningCapability [put]
func (h *ZoneCleaningRouter) CleanZones(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	var action types.PresetActionRequest
	if err := json.Unmarshal(raw, &action); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	switch action.Action {
	case "":
		badRequest(c, "Missing action in request body")
		return
	case types.ActionClean:
	default:
		badRequest(c, fmt.Sprintf("Invalid action %q in request body", action.Action))
		return
	}

	var req types.CleanZonesRequest
	if !decodeValidated(c, h.validator, schema.CleanZones, raw, &req) {
		return
	}

	zones := make([]entity.Zone, len(req.Zones))
	for i, z := range req.Zones {
		zones[i] = entity.NewZone(z.Points, z.Iterations)
	}

	if err := h.capability.Start(c.Request.Context(), zones); err != nil {
		capabilityFailed(c, "start zone cleaning", err)
		return
	}

	c.JSON(http.StatusOK, types.OK)
}
