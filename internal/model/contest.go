package model

import "time"

// Contest statuses.
const (
	ContestStatusDraft  = "draft"
	ContestStatusActive = "active"
	ContestStatusClosed = "closed"
)

// Contest is a timed writing competition with distinct submission and
// voting windows. The "voting started" moment is not a stored status: it
// is detected from the deadlines by the checker.
type Contest struct {
	ContestID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"contest_id"`
	Title              string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Slug               string    `gorm:"type:varchar(200);not null;uniqueIndex"         json:"slug"`
	Description        string    `gorm:"type:text;not null;default:''"                  json:"description"`
	Status             string    `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"` // draft | active | closed
	SubmissionDeadline time.Time `gorm:"not null"                                       json:"submission_deadline"`
	VotingDeadline     time.Time `gorm:"not null"                                       json:"voting_deadline"`
	BaseModel
}

// TableName maps the model to its table.
func (Contest) TableName() string { return "contests" }

// InVotingWindow reports whether the contest sits between its two
// deadlines at the given instant: submissions closed, voting still open.
func (c *Contest) InVotingWindow(now time.Time) bool {
	return c.SubmissionDeadline.Before(now) && !c.VotingDeadline.Before(now)
}
