package model

// Subscription sources.
const (
	SubscriberSourceLandingPage = "landing_page"
)

// NewsletterSubscriber is an anonymous subscription: an email with no
// account behind it. Emails are stored lower-cased so the unique index
// enforces case-insensitive uniqueness.
type NewsletterSubscriber struct {
	SubscriberID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subscriber_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	Source       string `gorm:"type:varchar(50);not null;default:'landing_page'" json:"source"`
	BaseModel
}

// TableName maps the model to its table.
func (NewsletterSubscriber) TableName() string { return "newsletter_subscribers" }
