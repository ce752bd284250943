package model

import "time"

// MaintenanceMode is the singleton maintenance flag — exactly one row
// exists (singleton column is a checked TRUE primary key).
type MaintenanceMode struct {
	Singleton         bool       `gorm:"primaryKey;default:true"               json:"-"`
	IsActive          bool       `gorm:"not null;default:false"                json:"is_active"`
	Message           string     `gorm:"type:text;not null;default:''"         json:"message"`
	EstimatedDuration string     `gorm:"type:varchar(100);not null;default:''" json:"estimated_duration"`
	ActivatedAt       *time.Time `json:"activated_at,omitempty"`
	ActivatedBy       string     `gorm:"type:varchar(255);not null;default:''" json:"activated_by"`
	UpdatedAt         time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"updated_at"`
}

// TableName maps the model to its table.
func (MaintenanceMode) TableName() string { return "maintenance_mode" }
