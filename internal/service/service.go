package service

import (
	"go.uber.org/zap"

	"github.com/cristianccgg/letranido-backend/config"
	"github.com/cristianccgg/letranido-backend/internal/mailer"
	"github.com/cristianccgg/letranido-backend/internal/repository"
	"github.com/cristianccgg/letranido-backend/pkg/jwt"
	"github.com/cristianccgg/letranido-backend/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	Auth        AuthService
	Contest     ContestService
	Deadline    DeadlineService
	Newsletter  NewsletterService
	Maintenance MaintenanceService
	Export      ExportService
	Calendar    CalendarService
}

// NewService creates the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	dispatcher mailer.Dispatcher,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Contest:     NewContestService(repo, logger),
		Deadline:    NewDeadlineService(repo, dispatcher, logger),
		Newsletter:  NewNewsletterService(repo, logger),
		Maintenance: NewMaintenanceService(repo, rdb, logger),
		Export:      NewExportService(repo, logger),
		Calendar:    NewCalendarService(cfg, repo, logger),
	}
}
