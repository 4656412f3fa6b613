package models

// DigestPayload is the queued request for one daily digest email.
type DigestPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
