package model

import "time"

// Email types logged per contest.
const (
	EmailTypeVotingStarted = "voting_started"
)

// EmailLog records that a notification of a given type was sent for a
// contest. The (contest_id, email_type) unique key is the idempotency
// guard: inserting it atomically claims the send.
type EmailLog struct {
	EmailLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"email_log_id"`
	ContestID  string    `gorm:"type:uuid;not null;uniqueIndex:email_logs_contest_type_key" json:"contest_id"`
	EmailType  string    `gorm:"type:varchar(50);not null;uniqueIndex:email_logs_contest_type_key" json:"email_type"`
	SentAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                   json:"sent_at"`
}

// TableName maps the model to its table.
func (EmailLog) TableName() string { return "email_logs" }
