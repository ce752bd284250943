package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cristianccgg/letranido-backend/internal/model"
)

// EmailLogRepository is the email_logs data-access interface.
type EmailLogRepository interface {
	// ClaimSend atomically inserts the (contest, emailType) log row.
	// Returns true when this call created the row — the caller owns the
	// send. Returns false when the row already existed. This is the
	// idempotency guard: concurrent checker runs cannot both claim.
	ClaimSend(ctx context.Context, contestID, emailType string) (bool, error)
	// ReleaseClaim removes the log row so a failed send can be retried
	// by the next run.
	ReleaseClaim(ctx context.Context, contestID, emailType string) error
	Exists(ctx context.Context, contestID, emailType string) (bool, error)
}

type emailLogRepo struct {
	db *gorm.DB
}

// NewEmailLogRepo creates the GORM-backed EmailLogRepository.
func NewEmailLogRepo(db *gorm.DB) EmailLogRepository {
	return &emailLogRepo{db: db}
}

func (r *emailLogRepo) ClaimSend(ctx context.Context, contestID, emailType string) (bool, error) {
	log := model.EmailLog{
		ContestID: contestID,
		EmailType: emailType,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contest_id"}, {Name: "email_type"}},
			DoNothing: true,
		}).
		Create(&log)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *emailLogRepo) ReleaseClaim(ctx context.Context, contestID, emailType string) error {
	return r.db.WithContext(ctx).
		Where("contest_id = ? AND email_type = ?", contestID, emailType).
		Delete(&model.EmailLog{}).Error
}

func (r *emailLogRepo) Exists(ctx context.Context, contestID, emailType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EmailLog{}).
		Where("contest_id = ? AND email_type = ?", contestID, emailType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
