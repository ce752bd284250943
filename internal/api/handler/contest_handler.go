package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/service"
	"github.com/cristianccgg/letranido-backend/pkg/response"
)

// ContestHandler serves the contest endpoints, the manual deadline
// check and the public calendar feed.
type ContestHandler struct {
	contestSvc  service.ContestService
	deadlineSvc service.DeadlineService
	calendarSvc service.CalendarService
}

// NewContestHandler creates the ContestHandler.
func NewContestHandler(contestSvc service.ContestService, deadlineSvc service.DeadlineService, calendarSvc service.CalendarService) *ContestHandler {
	return &ContestHandler{
		contestSvc:  contestSvc,
		deadlineSvc: deadlineSvc,
		calendarSvc: calendarSvc,
	}
}

// ListContests lists contests, optionally filtered by status.
// GET /api/v1/contests?status=active
func (h *ContestHandler) ListContests(c *gin.Context) {
	contests, err := h.contestSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, contests)
}

// GetContest returns one contest by slug.
// GET /api/v1/contests/:slug
func (h *ContestHandler) GetContest(c *gin.Context) {
	contest, err := h.contestSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleContestError(c, err)
		return
	}

	response.OK(c, contest)
}

// CreateContest creates a contest in draft status.
// POST /api/v1/contests
func (h *ContestHandler) CreateContest(c *gin.Context) {
	var req dto.CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Datos del concurso inválidos")
		return
	}

	contest, err := h.contestSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleContestError(c, err)
		return
	}

	response.Created(c, contest)
}

// UpdateContest updates fields and/or advances the status.
// PUT /api/v1/contests/:id
func (h *ContestHandler) UpdateContest(c *gin.Context) {
	var req dto.UpdateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Datos del concurso inválidos")
		return
	}

	contest, err := h.contestSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleContestError(c, err)
		return
	}

	response.OK(c, contest)
}

// DeleteContest removes a contest.
// DELETE /api/v1/contests/:id
func (h *ContestHandler) DeleteContest(c *gin.Context) {
	if err := h.contestSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleContestError(c, err)
		return
	}

	response.OK(c, nil)
}

// CheckDeadlines triggers one deadline-checker run on demand.
// POST /api/v1/contests/check-deadlines
func (h *ContestHandler) CheckDeadlines(c *gin.Context) {
	report, err := h.deadlineSvc.CheckDeadlines(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}

// Calendar serves the iCalendar feed of active contest deadlines.
// GET /api/v1/contests/calendar.ics
func (h *ContestHandler) Calendar(c *gin.Context) {
	feed, err := h.calendarSvc.ContestCalendar(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="letranido.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// handleContestError maps contest business errors to responses.
func (h *ContestHandler) handleContestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrContestNotFound):
		response.NotFound(c, 12001, "Concurso no encontrado")
	case errors.Is(err, service.ErrSlugTaken):
		response.Conflict(c, 12002, "Ya existe un concurso con ese slug")
	case errors.Is(err, service.ErrInvalidDeadlines):
		response.BadRequest(c, 12003, "La fecha límite de votación debe ser posterior a la de envío")
	case errors.Is(err, service.ErrInvalidTransition):
		response.BadRequest(c, 12004, "Transición de estado inválida")
	default:
		response.InternalError(c)
	}
}
