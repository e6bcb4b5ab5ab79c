package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/networker-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/networker-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/networker-service/internal/app"
	"github.com/jsamuelsen/networker-service/internal/domain"
	"github.com/jsamuelsen/networker-service/internal/platform/config"
)

// DefaultMaxRefreshWait bounds the post-refresh wait when none is given.
const DefaultMaxRefreshWait = 15 * time.Second

// ProtectionHandler exposes vCenter refresh and protection group membership.
type ProtectionHandler struct {
	service *app.ProtectionService
	maxWait time.Duration
}

// NewProtectionHandler creates a new protection handler.
// maxWait caps the refresh wait a caller may request; the wait holds the
// response open, so it must stay below the server write timeout.
// A non-positive maxWait uses DefaultMaxRefreshWait.
func NewProtectionHandler(service *app.ProtectionService, maxWait time.Duration) *ProtectionHandler {
	if maxWait <= 0 {
		maxWait = DefaultMaxRefreshWait
	}

	return &ProtectionHandler{
		service: service,
		maxWait: maxWait,
	}
}

// RefreshVCenters handles POST /api/v1/vcenters/refresh
// The body is optional; without one the call returns as soon as Networker
// accepts the refresh.
//
// @Summary Refresh vCenter inventory
// @Tags vcenters
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest false "Wait settings"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/vcenters/refresh [post]
func (h *ProtectionHandler) RefreshVCenters(c *gin.Context) {
	var req dto.RefreshRequest

	if c.Request.ContentLength != 0 {
		if !bindRequest(c, &req) {
			return
		}
	}

	waitFor := time.Duration(req.WaitFor) * time.Second
	if waitFor > h.maxWait {
		limit := strconv.Itoa(int(h.maxWait / time.Second))
		dto.RespondWithValidationErrors(c, map[string]string{
			"waitFor": "must be less than or equal to " + limit,
		})

		return
	}

	result, err := h.service.RefreshVCenters(c.Request.Context(), waitFor)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if result == nil {
		result = gin.H{}
	}

	c.JSON(http.StatusOK, result)
}

// UpdateProtectionGroup handles PUT /api/v1/protection-groups/:group/vms
// Brings the listed VMs into the requested state within the group.
//
// @Summary Reconcile protection group membership
// @Tags protection-groups
// @Accept json
// @Produce json
// @Param group path string true "Protection group name"
// @Param request body dto.MembershipRequest true "Desired membership"
// @Success 200 {object} dto.MembershipResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/protection-groups/{group}/vms [put]
func (h *ProtectionHandler) UpdateProtectionGroup(c *gin.Context) {
	group := c.Param("group")
	if group == "" {
		dto.AbortWithErrorCode(c, dto.ErrorCodeBadRequest, "protection group is required")
		return
	}

	var req dto.MembershipRequest
	if !bindRequest(c, &req) {
		return
	}

	mode, err := domain.ModeFromState(req.DesiredState())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	change, err := h.service.UpdateProtectionGroup(c.Request.Context(), app.UpdateRequest{
		VMNames:         req.VMNames,
		Mode:            mode,
		ProtectionGroup: group,
		VCenter:         req.VCenter,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMembershipResponse(change))
}

// RegisterProtectionRoutes registers the protection routes on the given
// router group. Both routes change Networker state and are guarded by
// middleware.RequireOperator.
func (h *ProtectionHandler) RegisterProtectionRoutes(rg *gin.RouterGroup, authCfg *config.AuthConfig) {
	guard := middleware.RequireOperator(authCfg)

	rg.POST("/vcenters/refresh", guard, h.RefreshVCenters)
	rg.PUT("/protection-groups/:group/vms", guard, h.UpdateProtectionGroup)
}

// bindRequest binds and validates the JSON body, writing the 400 response
// itself when that fails.
func bindRequest(c *gin.Context, req any) bool {
	err := dto.BindAndValidate(c, req)
	if err == nil {
		return true
	}

	if dto.IsValidationError(err) {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return false
	}

	dto.AbortWithErrorCode(c, dto.ErrorCodeBadRequest, err.Error())

	return false
}
