package dto

import "time"

// ── contest DTOs ──

// CreateContestRequest is the admin contest-creation payload.
type CreateContestRequest struct {
	Title              string    `json:"title"               binding:"required,min=3,max=200"`
	Slug               string    `json:"slug"                binding:"required,min=3,max=200"`
	Description        string    `json:"description"`
	SubmissionDeadline time.Time `json:"submission_deadline" binding:"required"`
	VotingDeadline     time.Time `json:"voting_deadline"     binding:"required"`
}

// UpdateContestRequest is the admin contest-update payload; nil fields
// are left untouched.
type UpdateContestRequest struct {
	Title              *string    `json:"title"               binding:"omitempty,min=3,max=200"`
	Description        *string    `json:"description"`
	Status             *string    `json:"status"              binding:"omitempty,oneof=draft active closed"`
	SubmissionDeadline *time.Time `json:"submission_deadline"`
	VotingDeadline     *time.Time `json:"voting_deadline"`
}

// ContestResponse is the contest view returned by the API.
type ContestResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description"`
	Status             string    `json:"status"`
	SubmissionDeadline time.Time `json:"submission_deadline"`
	VotingDeadline     time.Time `json:"voting_deadline"`
	VotingOpen         bool      `json:"voting_open"`
	CreatedAt          time.Time `json:"created_at"`
}

// ── deadline checker DTOs ──

// ContestCheckResult is the per-contest outcome of one checker run.
// One contest failing never aborts processing of the rest.
type ContestCheckResult struct {
	ContestID    string `json:"contest_id"`
	ContestTitle string `json:"contest_title"`
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
}

// DeadlineCheckReport is the aggregate outcome of one checker run.
type DeadlineCheckReport struct {
	Success   bool                 `json:"success"`
	Message   string               `json:"message"`
	CheckedAt time.Time            `json:"checked_at"`
	Total     int                  `json:"total"`
	Sent      int                  `json:"sent"`
	Failed    int                  `json:"failed"`
	Results   []ContestCheckResult `json:"results"`
}
