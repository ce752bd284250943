package dto

import "time"

// ── maintenance DTOs ──

// ToggleMaintenanceRequest is the admin toggle payload. Message and
// duration are optional: the status endpoint falls back to defaults.
type ToggleMaintenanceRequest struct {
	Active            bool   `json:"active"`
	Message           string `json:"message"            binding:"max=2000"`
	EstimatedDuration string `json:"estimated_duration" binding:"max=100"`
}

// MaintenanceStateResponse is the singleton maintenance state view.
type MaintenanceStateResponse struct {
	IsActive          bool       `json:"is_active"`
	Message           string     `json:"message"`
	EstimatedDuration string     `json:"estimated_duration"`
	ActivatedAt       *time.Time `json:"activated_at,omitempty"`
	ActivatedBy       string     `json:"activated_by,omitempty"`
}
