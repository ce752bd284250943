package dto

// ── newsletter DTOs ──

// SubscribeRequest is the newsletter subscription payload.
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// SubscribeResponse reports the subscription outcome. Message is the
// user-facing text shown on the landing page.
type SubscribeResponse struct {
	Message           string `json:"message"`
	IsNewSubscription bool   `json:"isNewSubscription"`
}

// UnsubscribeRequest is the unsubscribe payload.
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}
