package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cristianccgg/letranido-backend/internal/model"
)

// NewsletterRepository is the newsletter_subscribers data-access interface.
type NewsletterRepository interface {
	// GetByEmail looks up a subscriber by normalized (lower-cased) email.
	GetByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error)
	// Create inserts a new subscriber row. A unique violation surfaces as
	// gorm.ErrDuplicatedKey for the service to reclassify.
	Create(ctx context.Context, sub *model.NewsletterSubscriber) error
	Update(ctx context.Context, sub *model.NewsletterSubscriber) error
	ListActive(ctx context.Context) ([]model.NewsletterSubscriber, error)
}

type newsletterRepo struct {
	db *gorm.DB
}

// NewNewsletterRepo creates the GORM-backed NewsletterRepository.
func NewNewsletterRepo(db *gorm.DB) NewsletterRepository {
	return &newsletterRepo{db: db}
}

func (r *newsletterRepo) GetByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	var sub model.NewsletterSubscriber
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *newsletterRepo) Create(ctx context.Context, sub *model.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *newsletterRepo) Update(ctx context.Context, sub *model.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *newsletterRepo) ListActive(ctx context.Context) ([]model.NewsletterSubscriber, error) {
	var subs []model.NewsletterSubscriber
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("email ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
