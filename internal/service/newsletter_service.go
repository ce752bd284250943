package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/model"
	"github.com/cristianccgg/letranido-backend/internal/repository"
)

// ── newsletter business errors ──

var (
	ErrInvalidEmail    = errors.New("Por favor ingresa un email válido")
	ErrProfileNotFound = errors.New("No encontramos una cuenta con ese email")
)

// NewsletterService reconciles subscription intent against the two
// representations of a subscriber: a registered profile's opt-in flag
// and a standalone newsletter_subscribers row. A given email counts as
// subscribed if either representation says so; the two are never merged.
type NewsletterService interface {
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error)
	Unsubscribe(ctx context.Context, req *dto.UnsubscribeRequest) (*dto.UserResponse, error)
}

type newsletterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNewsletterService creates the NewsletterService.
func NewNewsletterService(repo *repository.Repository, logger *zap.Logger) NewsletterService {
	return &newsletterService{repo: repo, logger: logger}
}

// ── subscriber union ──

type subscriberKind int

const (
	subscriberNone subscriberKind = iota
	subscriberRegistered
	subscriberAnonymous
)

// resolvedSubscriber is the tagged union over the two representations.
type resolvedSubscriber struct {
	kind       subscriberKind
	profile    *model.UserProfile
	subscriber *model.NewsletterSubscriber
}

// resolveSubscriber classifies an email. A registered profile wins over
// an anonymous row when both exist.
func (s *newsletterService) resolveSubscriber(ctx context.Context, email string) (*resolvedSubscriber, error) {
	profile, err := s.repo.UserProfile.GetByEmail(ctx, email)
	if err == nil {
		return &resolvedSubscriber{kind: subscriberRegistered, profile: profile}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub, err := s.repo.Newsletter.GetByEmail(ctx, email)
	if err == nil {
		return &resolvedSubscriber{kind: subscriberAnonymous, subscriber: sub}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &resolvedSubscriber{kind: subscriberNone}, nil
}

// normalizeEmail lower-cases and trims so lookups and the unique index
// are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return email != "" && strings.Contains(email, "@")
}

// ────────────────────── Subscribe ──────────────────────

func (s *newsletterService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}

	resolved, err := s.resolveSubscriber(ctx, email)
	if err != nil {
		s.logger.Error("resolving subscriber failed", zap.Error(err))
		return nil, err
	}

	switch resolved.kind {
	case subscriberRegistered:
		if resolved.profile.NewsletterContests {
			return &dto.SubscribeResponse{
				Message: "¡Ya estás suscrito con tu cuenta!",
			}, nil
		}
		resolved.profile.NewsletterContests = true
		if err := s.repo.UserProfile.Update(ctx, resolved.profile); err != nil {
			s.logger.Error("activating newsletter on profile failed", zap.Error(err))
			return nil, err
		}
		return &dto.SubscribeResponse{
			Message: "¡Suscripción activada en tu cuenta!",
		}, nil

	case subscriberAnonymous:
		if resolved.subscriber.IsActive {
			return &dto.SubscribeResponse{
				Message: "¡Ya estás suscrito!",
			}, nil
		}
		resolved.subscriber.IsActive = true
		if err := s.repo.Newsletter.Update(ctx, resolved.subscriber); err != nil {
			s.logger.Error("reactivating subscriber failed", zap.Error(err))
			return nil, err
		}
		return &dto.SubscribeResponse{
			Message: "¡Tu suscripción fue reactivada!",
		}, nil

	default:
		sub := &model.NewsletterSubscriber{
			Email:    email,
			IsActive: true,
			Source:   model.SubscriberSourceLandingPage,
		}
		if err := s.repo.Newsletter.Create(ctx, sub); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race with a concurrent request for the same
				// email: the row exists, so the intent is satisfied.
				return &dto.SubscribeResponse{
					Message: "¡Ya estás suscrito!",
				}, nil
			}
			s.logger.Error("creating subscriber failed", zap.Error(err))
			return nil, err
		}
		return &dto.SubscribeResponse{
			Message:           "¡Gracias por suscribirte!",
			IsNewSubscription: true,
		}, nil
	}
}

// ────────────────────── Unsubscribe ──────────────────────

func (s *newsletterService) Unsubscribe(ctx context.Context, req *dto.UnsubscribeRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}

	profile, err := s.repo.UserProfile.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("looking up profile failed", zap.Error(err))
		return nil, err
	}

	profile.ClearNotificationFlags()
	if err := s.repo.UserProfile.Update(ctx, profile); err != nil {
		s.logger.Error("clearing notification flags failed", zap.Error(err))
		return nil, err
	}

	return &dto.UserResponse{
		ID:                   profile.UserID,
		Email:                profile.Email,
		DisplayName:          profile.DisplayName,
		IsAdmin:              profile.IsAdmin,
		NewsletterContests:   profile.NewsletterContests,
		ContestReminders:     profile.ContestReminders,
		ResultNotifications:  profile.ResultNotifications,
		CommentNotifications: profile.CommentNotifications,
	}, nil
}
