package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianccgg/letranido-backend/internal/service"
	"github.com/cristianccgg/letranido-backend/pkg/response"
)

// ExportHandler serves the admin export endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSubscribers streams the newsletter audience as an .xlsx file.
// GET /api/v1/export/subscribers
func (h *ExportHandler) ExportSubscribers(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportSubscribers(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportEmpty):
			response.NotFound(c, 15001, "No hay suscriptores para exportar")
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c)
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
