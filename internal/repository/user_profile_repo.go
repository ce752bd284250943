package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cristianccgg/letranido-backend/internal/model"
)

// UserProfileRepository is the user_profiles data-access interface.
type UserProfileRepository interface {
	GetByID(ctx context.Context, id string) (*model.UserProfile, error)
	// GetByEmail looks up a profile by normalized (lower-cased) email.
	GetByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
	// ListNewsletterOptIns returns profiles with newsletter_contests set.
	ListNewsletterOptIns(ctx context.Context) ([]model.UserProfile, error)
}

type userProfileRepo struct {
	db *gorm.DB
}

// NewUserProfileRepo creates the GORM-backed UserProfileRepository.
func NewUserProfileRepo(db *gorm.DB) UserProfileRepository {
	return &userProfileRepo{db: db}
}

func (r *userProfileRepo) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userProfileRepo) GetByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userProfileRepo) Update(ctx context.Context, profile *model.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *userProfileRepo) ListNewsletterOptIns(ctx context.Context) ([]model.UserProfile, error) {
	var profiles []model.UserProfile
	err := r.db.WithContext(ctx).
		Where("newsletter_contests = ?", true).
		Order("email ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
