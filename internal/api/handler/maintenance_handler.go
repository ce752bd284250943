package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cristianccgg/letranido-backend/internal/api/middleware"
	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/service"
	"github.com/cristianccgg/letranido-backend/pkg/response"
)

// MaintenanceHandler serves the maintenance-mode endpoints.
type MaintenanceHandler struct {
	maintenanceSvc service.MaintenanceService
}

// NewMaintenanceHandler creates the MaintenanceHandler.
func NewMaintenanceHandler(maintenanceSvc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceSvc: maintenanceSvc}
}

// Status returns the singleton maintenance state.
// GET /api/v1/maintenance
func (h *MaintenanceHandler) Status(c *gin.Context) {
	state, err := h.maintenanceSvc.Status(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, state)
}

// Toggle flips the maintenance flag, recording who and when.
// POST /api/v1/maintenance/toggle
func (h *MaintenanceHandler) Toggle(c *gin.Context) {
	var req dto.ToggleMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "Datos de mantenimiento inválidos")
		return
	}

	adminEmail := c.GetString(middleware.CtxUserEmail)

	state, err := h.maintenanceSvc.Toggle(c.Request.Context(), &req, adminEmail)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, state)
}
