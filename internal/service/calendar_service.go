package service

import (
	"context"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/cristianccgg/letranido-backend/config"
	"github.com/cristianccgg/letranido-backend/internal/model"
	"github.com/cristianccgg/letranido-backend/internal/repository"
)

// CalendarService renders active contests as an iCalendar feed so
// participants can subscribe to deadlines from their own calendar app.
// Each contest yields two events: submissions close, voting closes.
type CalendarService interface {
	ContestCalendar(ctx context.Context) (string, error)
}

type calendarService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService creates the CalendarService.
func NewCalendarService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{cfg: cfg, repo: repo, logger: logger}
}

func (s *calendarService) ContestCalendar(ctx context.Context) (string, error) {
	contests, err := s.repo.Contest.List(ctx, model.ContestStatusActive)
	if err != nil {
		s.logger.Error("listing contests for calendar failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Letranido//Concursos//ES")
	cal.SetName("Concursos Letranido")

	for _, contest := range contests {
		submission := cal.AddEvent(fmt.Sprintf("%s-submission@letranido.com", contest.ContestID))
		submission.SetSummary(fmt.Sprintf("Cierre de envíos: %s", contest.Title))
		submission.SetDescription(contest.Description)
		submission.SetStartAt(contest.SubmissionDeadline)
		submission.SetEndAt(contest.SubmissionDeadline)
		submission.SetURL(fmt.Sprintf("%s/concursos/%s", s.cfg.Server.BaseURL, contest.Slug))

		voting := cal.AddEvent(fmt.Sprintf("%s-voting@letranido.com", contest.ContestID))
		voting.SetSummary(fmt.Sprintf("Cierre de votación: %s", contest.Title))
		voting.SetStartAt(contest.VotingDeadline)
		voting.SetEndAt(contest.VotingDeadline)
		voting.SetURL(fmt.Sprintf("%s/concursos/%s", s.cfg.Server.BaseURL, contest.Slug))
	}

	return cal.Serialize(), nil
}
