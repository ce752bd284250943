package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cristianccgg/letranido-backend/config"
	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/model"
	"github.com/cristianccgg/letranido-backend/internal/repository"
	"github.com/cristianccgg/letranido-backend/pkg/jwt"
)

// ── test helpers ──

func setupTestAuthService(t *testing.T) (AuthService, *mockUserProfileRepo) {
	t.Helper()

	profileRepo := newMockUserProfileRepo()
	repo := &repository.Repository{
		Contest:     newMockContestRepo(),
		EmailLog:    newMockEmailLogRepo(),
		UserProfile: profileRepo,
		Newsletter:  newMockNewsletterRepo(),
		Maintenance: newMockMaintenanceRepo(),
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-0123456789abcdef",
			AccessTokenTTL: time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)

	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, profileRepo
}

func adminProfile(t *testing.T, email, password string) *model.UserProfile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	h := string(hash)
	return &model.UserProfile{
		UserID:       "admin-1",
		Email:        email,
		DisplayName:  "Cristian",
		PasswordHash: &h,
		IsAdmin:      true,
	}
}

// ── Login ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, profileRepo := setupTestAuthService(t)
	profileRepo.profiles["admin@letranido.com"] = adminProfile(t, "admin@letranido.com", "Secreta123")

	token, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Admin@Letranido.com",
		Password: "Secreta123",
	})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}
	if token.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}
	if token.ExpiresIn != 3600 {
		t.Errorf("expected expires_in=3600, got %d", token.ExpiresIn)
	}
	if !token.User.IsAdmin || token.User.Email != "admin@letranido.com" {
		t.Errorf("unexpected user in token response: %+v", token.User)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, profileRepo := setupTestAuthService(t)
	profileRepo.profiles["admin@letranido.com"] = adminProfile(t, "admin@letranido.com", "Secreta123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@letranido.com",
		Password: "otra",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nadie@letranido.com",
		Password: "Secreta123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_NonAdminRejected(t *testing.T) {
	svc, profileRepo := setupTestAuthService(t)
	profile := adminProfile(t, "ana@ejemplo.com", "Secreta123")
	profile.IsAdmin = false
	profileRepo.profiles["ana@ejemplo.com"] = profile

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ana@ejemplo.com",
		Password: "Secreta123",
	})
	if !errors.Is(err, ErrNotAdmin) {
		t.Errorf("expected ErrNotAdmin, got %v", err)
	}
}

// ── GetCurrentUser ──

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, profileRepo := setupTestAuthService(t)
	profileRepo.profiles["admin@letranido.com"] = adminProfile(t, "admin@letranido.com", "Secreta123")

	user, err := svc.GetCurrentUser(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("GetCurrentUser should succeed: %v", err)
	}
	if user.Email != "admin@letranido.com" || user.DisplayName != "Cristian" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthService_GetCurrentUser_NotFound(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.GetCurrentUser(context.Background(), "missing")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}
