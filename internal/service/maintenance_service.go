package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/repository"
	"github.com/cristianccgg/letranido-backend/pkg/redis"
)

// Defaults shown when the admin toggles maintenance without a message.
const (
	defaultMaintenanceMessage  = "Estamos realizando tareas de mantenimiento. Volvemos pronto."
	defaultMaintenanceDuration = "unos minutos"
)

// MaintenanceService reads and toggles the singleton maintenance state.
// The repository toggle is the single writer; every other party is a
// read-only observer notified through the redis invalidation channel.
type MaintenanceService interface {
	Status(ctx context.Context) (*dto.MaintenanceStateResponse, error)
	Toggle(ctx context.Context, req *dto.ToggleMaintenanceRequest, adminEmail string) (*dto.MaintenanceStateResponse, error)
}

type maintenanceService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewMaintenanceService creates the MaintenanceService. rdb may be nil;
// toggles then simply skip the invalidation publish.
func NewMaintenanceService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) MaintenanceService {
	return &maintenanceService{repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Status ──────────────────────

func (s *maintenanceService) Status(ctx context.Context) (*dto.MaintenanceStateResponse, error) {
	state, err := s.repo.Maintenance.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Row not seeded yet: report the safe inactive default.
			return &dto.MaintenanceStateResponse{
				Message:           defaultMaintenanceMessage,
				EstimatedDuration: defaultMaintenanceDuration,
			}, nil
		}
		s.logger.Error("reading maintenance state failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.MaintenanceStateResponse{
		IsActive:          state.IsActive,
		Message:           state.Message,
		EstimatedDuration: state.EstimatedDuration,
		ActivatedAt:       state.ActivatedAt,
		ActivatedBy:       state.ActivatedBy,
	}
	if resp.Message == "" {
		resp.Message = defaultMaintenanceMessage
	}
	if resp.EstimatedDuration == "" {
		resp.EstimatedDuration = defaultMaintenanceDuration
	}
	return resp, nil
}

// ────────────────────── Toggle ──────────────────────

func (s *maintenanceService) Toggle(ctx context.Context, req *dto.ToggleMaintenanceRequest, adminEmail string) (*dto.MaintenanceStateResponse, error) {
	state, err := s.repo.Maintenance.Toggle(ctx, req.Active, req.Message, req.EstimatedDuration, adminEmail)
	if err != nil {
		s.logger.Error("toggling maintenance mode failed", zap.Error(err))
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.PublishMaintenanceChanged(ctx); err != nil {
			// Observers converge on their next refetch anyway.
			s.logger.Warn("publishing maintenance invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("maintenance mode toggled",
		zap.Bool("active", state.IsActive),
		zap.String("admin", adminEmail),
	)

	resp := &dto.MaintenanceStateResponse{
		IsActive:          state.IsActive,
		Message:           state.Message,
		EstimatedDuration: state.EstimatedDuration,
		ActivatedAt:       state.ActivatedAt,
		ActivatedBy:       state.ActivatedBy,
	}
	if resp.Message == "" {
		resp.Message = defaultMaintenanceMessage
	}
	if resp.EstimatedDuration == "" {
		resp.EstimatedDuration = defaultMaintenanceDuration
	}
	return resp, nil
}
