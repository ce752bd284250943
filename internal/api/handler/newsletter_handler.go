package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/service"
	"github.com/cristianccgg/letranido-backend/pkg/response"
)

// NewsletterHandler serves the public newsletter endpoints.
type NewsletterHandler struct {
	newsletterSvc service.NewsletterService
}

// NewNewsletterHandler creates the NewsletterHandler.
func NewNewsletterHandler(newsletterSvc service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterSvc: newsletterSvc}
}

// Subscribe registers newsletter intent for an email.
// POST /api/v1/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "Por favor ingresa un email válido")
		return
	}

	result, err := h.newsletterSvc.Subscribe(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			response.BadRequest(c, 13001, "Por favor ingresa un email válido")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Unsubscribe clears every notification flag on a registered account.
// POST /api/v1/newsletter/unsubscribe
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req dto.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "Por favor ingresa un email válido")
		return
	}

	user, err := h.newsletterSvc.Unsubscribe(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			response.BadRequest(c, 13001, "Por favor ingresa un email válido")
		case errors.Is(err, service.ErrProfileNotFound):
			response.NotFound(c, 13002, "No encontramos una cuenta con ese email")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}
