package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cristianccgg/letranido-backend/internal/model"
)

// MaintenanceRepository is the maintenance_mode singleton data-access
// interface. Toggle is the single writer of the row.
type MaintenanceRepository interface {
	Get(ctx context.Context) (*model.MaintenanceMode, error)
	// Toggle flips the flag in one UPDATE, recording who, when and why,
	// and returns the state after the write.
	Toggle(ctx context.Context, active bool, message, duration, adminEmail string) (*model.MaintenanceMode, error)
}

type maintenanceRepo struct {
	db *gorm.DB
}

// NewMaintenanceRepo creates the GORM-backed MaintenanceRepository.
func NewMaintenanceRepo(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

func (r *maintenanceRepo) Get(ctx context.Context) (*model.MaintenanceMode, error) {
	var state model.MaintenanceMode
	err := r.db.WithContext(ctx).First(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *maintenanceRepo) Toggle(ctx context.Context, active bool, message, duration, adminEmail string) (*model.MaintenanceMode, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"is_active":          active,
		"message":            message,
		"estimated_duration": duration,
		"activated_by":       adminEmail,
		"updated_at":         now,
	}
	if active {
		updates["activated_at"] = now
	}

	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceMode{}).
		Where("singleton = ?", true).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx)
}
