package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"tempo/services/calendar"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailMailer sends mail through the Gmail API using the same per-user OAuth2
// tokens the calendar provider reads.
type GmailMailer struct {
	cfg    *oauth2.Config
	tokens calendar.TokenStore
	from   string
}

// NewGmailMailer wires a Gmail mailer from OAuth2 client credentials, a
// per-user token store, and the From address shown on outgoing mail.
func NewGmailMailer(clientID, clientSecret string, tokens calendar.TokenStore, from string) *GmailMailer {
	return &GmailMailer{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{gmail.GmailSendScope},
			Endpoint:     google.Endpoint,
		},
		tokens: tokens,
		from:   from,
	}
}

func (m *GmailMailer) serviceFor(ctx context.Context, userID string) (*gmail.Service, error) {
	tok, err := m.tokens.Token(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc, err := gmail.NewService(ctx, option.WithTokenSource(m.cfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to build gmail service: %w", err)
	}
	return svc, nil
}

// Send delivers one message from the user's own mailbox.
func (m *GmailMailer) Send(ctx context.Context, userID string, msg Message) error {
	svc, err := m.serviceFor(ctx, userID)
	if err != nil {
		return err
	}

	raw := buildRawMessage(m.from, msg)
	_, err = svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

// buildRawMessage assembles an RFC 822 message encoded as base64url, which
// is what the Gmail API expects in the Raw field.
func buildRawMessage(from string, msg Message) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
