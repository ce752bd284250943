package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cristianccgg/letranido-backend/config"
	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/model"
	"github.com/cristianccgg/letranido-backend/internal/repository"
	"github.com/cristianccgg/letranido-backend/pkg/jwt"
	"github.com/cristianccgg/letranido-backend/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("email o contraseña incorrectos")
	ErrNotAdmin           = errors.New("la cuenta no tiene permisos de administración")
)

// AuthService authenticates administrators for the back-office surface
// (maintenance toggle, contest management, exports).
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout revokes the token's jti for its remaining lifetime.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates the AuthService. rdb may be nil; logout then
// degrades to a no-op (tokens expire on their own TTL).
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func profileToUserResponse(p *model.UserProfile) dto.UserResponse {
	return dto.UserResponse{
		ID:                   p.UserID,
		Email:                p.Email,
		DisplayName:          p.DisplayName,
		IsAdmin:              p.IsAdmin,
		NewsletterContests:   p.NewsletterContests,
		ContestReminders:     p.ContestReminders,
		ResultNotifications:  p.ResultNotifications,
		CommentNotifications: p.CommentNotifications,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	profile, err := s.repo.UserProfile.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("looking up profile failed", zap.Error(err))
		return nil, err
	}

	if profile.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !profile.IsAdmin {
		return nil, ErrNotAdmin
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(profile.UserID, profile.Email, profile.IsAdmin)
	if err != nil {
		s.logger.Error("generating access token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:        profileToUserResponse(profile),
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	profile, err := s.repo.UserProfile.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("looking up profile failed", zap.Error(err))
		return nil, err
	}

	resp := profileToUserResponse(profile)
	return &resp, nil
}
