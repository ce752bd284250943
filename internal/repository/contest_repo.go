package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cristianccgg/letranido-backend/internal/model"
)

// ContestRepository is the contests data-access interface.
type ContestRepository interface {
	Create(ctx context.Context, contest *model.Contest) error
	GetByID(ctx context.Context, id string) (*model.Contest, error)
	GetBySlug(ctx context.Context, slug string) (*model.Contest, error)
	Update(ctx context.Context, contest *model.Contest) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string) ([]model.Contest, error)
	// ListInVotingWindow returns active contests whose submission deadline
	// has passed while the voting deadline has not.
	ListInVotingWindow(ctx context.Context, now time.Time) ([]model.Contest, error)
}

type contestRepo struct {
	db *gorm.DB
}

// NewContestRepo creates the GORM-backed ContestRepository.
func NewContestRepo(db *gorm.DB) ContestRepository {
	return &contestRepo{db: db}
}

func (r *contestRepo) Create(ctx context.Context, contest *model.Contest) error {
	return r.db.WithContext(ctx).Create(contest).Error
}

func (r *contestRepo) GetByID(ctx context.Context, id string) (*model.Contest, error) {
	var contest model.Contest
	err := r.db.WithContext(ctx).
		Where("contest_id = ?", id).
		First(&contest).Error
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func (r *contestRepo) GetBySlug(ctx context.Context, slug string) (*model.Contest, error) {
	var contest model.Contest
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&contest).Error
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func (r *contestRepo) Update(ctx context.Context, contest *model.Contest) error {
	return r.db.WithContext(ctx).Save(contest).Error
}

func (r *contestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("contest_id = ?", id).
		Delete(&model.Contest{}).Error
}

func (r *contestRepo) List(ctx context.Context, status string) ([]model.Contest, error) {
	var contests []model.Contest
	db := r.db.WithContext(ctx).Model(&model.Contest{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("submission_deadline ASC").Find(&contests).Error
	if err != nil {
		return nil, err
	}
	return contests, nil
}

func (r *contestRepo) ListInVotingWindow(ctx context.Context, now time.Time) ([]model.Contest, error) {
	var contests []model.Contest
	err := r.db.WithContext(ctx).
		Where("status = ?", model.ContestStatusActive).
		Where("submission_deadline < ?", now).
		Where("voting_deadline >= ?", now).
		Order("submission_deadline ASC").
		Find(&contests).Error
	if err != nil {
		return nil, err
	}
	return contests, nil
}
