package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/model"
	"github.com/cristianccgg/letranido-backend/internal/repository"
)

// ── contest business errors ──

var (
	ErrContestNotFound   = errors.New("concurso no encontrado")
	ErrSlugTaken         = errors.New("ya existe un concurso con ese slug")
	ErrInvalidDeadlines  = errors.New("la fecha límite de votación debe ser posterior a la de envío")
	ErrInvalidTransition = errors.New("transición de estado inválida")
)

// ContestService manages contest records. Deadline-driven behavior
// (the voting-started notification) lives in DeadlineService.
type ContestService interface {
	Create(ctx context.Context, req *dto.CreateContestRequest) (*dto.ContestResponse, error)
	Get(ctx context.Context, id string) (*dto.ContestResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.ContestResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateContestRequest) (*dto.ContestResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string) ([]dto.ContestResponse, error)
}

type contestService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewContestService creates the ContestService.
func NewContestService(repo *repository.Repository, logger *zap.Logger) ContestService {
	return &contestService{repo: repo, logger: logger, now: time.Now}
}

// validTransitions is the contest status machine: draft → active → closed.
var validTransitions = map[string]string{
	model.ContestStatusDraft:  model.ContestStatusActive,
	model.ContestStatusActive: model.ContestStatusClosed,
}

func (s *contestService) toResponse(c *model.Contest) *dto.ContestResponse {
	return &dto.ContestResponse{
		ID:                 c.ContestID,
		Title:              c.Title,
		Slug:               c.Slug,
		Description:        c.Description,
		Status:             c.Status,
		SubmissionDeadline: c.SubmissionDeadline,
		VotingDeadline:     c.VotingDeadline,
		VotingOpen:         c.Status == model.ContestStatusActive && c.InVotingWindow(s.now()),
		CreatedAt:          c.CreatedAt,
	}
}

// ────────────────────── Create ──────────────────────

func (s *contestService) Create(ctx context.Context, req *dto.CreateContestRequest) (*dto.ContestResponse, error) {
	if !req.VotingDeadline.After(req.SubmissionDeadline) {
		return nil, ErrInvalidDeadlines
	}

	contest := &model.Contest{
		Title:              req.Title,
		Slug:               req.Slug,
		Description:        req.Description,
		Status:             model.ContestStatusDraft,
		SubmissionDeadline: req.SubmissionDeadline,
		VotingDeadline:     req.VotingDeadline,
	}

	if err := s.repo.Contest.Create(ctx, contest); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		s.logger.Error("creating contest failed", zap.Error(err))
		return nil, err
	}

	return s.toResponse(contest), nil
}

// ────────────────────── Get / List ──────────────────────

func (s *contestService) Get(ctx context.Context, id string) (*dto.ContestResponse, error) {
	contest, err := s.repo.Contest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		s.logger.Error("loading contest failed", zap.Error(err))
		return nil, err
	}
	return s.toResponse(contest), nil
}

func (s *contestService) GetBySlug(ctx context.Context, slug string) (*dto.ContestResponse, error) {
	contest, err := s.repo.Contest.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		s.logger.Error("loading contest failed", zap.Error(err))
		return nil, err
	}
	return s.toResponse(contest), nil
}

func (s *contestService) List(ctx context.Context, status string) ([]dto.ContestResponse, error) {
	contests, err := s.repo.Contest.List(ctx, status)
	if err != nil {
		s.logger.Error("listing contests failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ContestResponse, 0, len(contests))
	for i := range contests {
		result = append(result, *s.toResponse(&contests[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *contestService) Update(ctx context.Context, id string, req *dto.UpdateContestRequest) (*dto.ContestResponse, error) {
	contest, err := s.repo.Contest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		s.logger.Error("loading contest failed", zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		contest.Title = *req.Title
	}
	if req.Description != nil {
		contest.Description = *req.Description
	}
	if req.SubmissionDeadline != nil {
		contest.SubmissionDeadline = *req.SubmissionDeadline
	}
	if req.VotingDeadline != nil {
		contest.VotingDeadline = *req.VotingDeadline
	}
	if !contest.VotingDeadline.After(contest.SubmissionDeadline) {
		return nil, ErrInvalidDeadlines
	}
	if req.Status != nil && *req.Status != contest.Status {
		if validTransitions[contest.Status] != *req.Status {
			return nil, ErrInvalidTransition
		}
		contest.Status = *req.Status
	}

	if err := s.repo.Contest.Update(ctx, contest); err != nil {
		s.logger.Error("updating contest failed", zap.Error(err))
		return nil, err
	}

	return s.toResponse(contest), nil
}

// ────────────────────── Delete ──────────────────────

func (s *contestService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Contest.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContestNotFound
		}
		s.logger.Error("loading contest failed", zap.Error(err))
		return err
	}

	if err := s.repo.Contest.Delete(ctx, id); err != nil {
		s.logger.Error("deleting contest failed", zap.Error(err))
		return err
	}
	return nil
}
