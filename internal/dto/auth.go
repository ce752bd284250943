package dto

// ── auth DTOs ──

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued access token.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // seconds
	User        UserResponse `json:"user"`
}

// UserResponse is the sanitized profile view.
type UserResponse struct {
	ID                   string `json:"id"`
	Email                string `json:"email"`
	DisplayName          string `json:"display_name"`
	IsAdmin              bool   `json:"is_admin"`
	NewsletterContests   bool   `json:"newsletter_contests"`
	ContestReminders     bool   `json:"contest_reminders"`
	ResultNotifications  bool   `json:"result_notifications"`
	CommentNotifications bool   `json:"comment_notifications"`
}
