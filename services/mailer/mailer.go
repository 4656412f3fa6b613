package mailer

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	// Body is plain text. HTML is deliberately unsupported; digests render
	// fine as text and stay out of spam folders.
	Body string
}

// Mailer sends email on behalf of a user.
type Mailer interface {
	Send(ctx context.Context, userID string, msg Message) error
}
