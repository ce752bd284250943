package model

// UserProfile is a registered account. Newsletter intent for registered
// users lives on the NewsletterContests flag, not in the standalone
// newsletter_subscribers table.
type UserProfile struct {
	UserID               string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email                string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	DisplayName          string  `gorm:"type:varchar(100);not null;default:''"          json:"display_name"`
	PasswordHash         *string `gorm:"type:varchar(255)"                              json:"-"`
	IsAdmin              bool    `gorm:"not null;default:false"                         json:"is_admin"`
	NewsletterContests   bool    `gorm:"not null;default:false"                         json:"newsletter_contests"`
	ContestReminders     bool    `gorm:"not null;default:false"                         json:"contest_reminders"`
	ResultNotifications  bool    `gorm:"not null;default:false"                         json:"result_notifications"`
	CommentNotifications bool    `gorm:"not null;default:false"                         json:"comment_notifications"`
	BaseModel
}

// TableName maps the model to its table.
func (UserProfile) TableName() string { return "user_profiles" }

// ClearNotificationFlags turns off every notification preference.
func (u *UserProfile) ClearNotificationFlags() {
	u.NewsletterContests = false
	u.ContestReminders = false
	u.ResultNotifications = false
	u.CommentNotifications = false
}
