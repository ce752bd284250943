package handler

import "github.com/cristianccgg/letranido-backend/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	Contest     *ContestHandler
	Newsletter  *NewsletterHandler
	Maintenance *MaintenanceHandler
	Export      *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Contest:     NewContestHandler(svc.Contest, svc.Deadline, svc.Calendar),
		Newsletter:  NewNewsletterHandler(svc.Newsletter),
		Maintenance: NewMaintenanceHandler(svc.Maintenance),
		Export:      NewExportHandler(svc.Export),
	}
}
