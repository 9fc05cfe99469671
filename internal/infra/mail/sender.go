package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// WithDialer swaps the SMTP transport. Used by tests.
func (s *EmailSender) WithDialer(d Dialer) *EmailSender {
	s.dialer = d
	return s
}

// Send delivers one HTML email over SMTP. The generated Message-ID is
// reported as the provider message id.
func (s *EmailSender) Send(ctx context.Context, email entity.OutboundEmail) entity.DeliveryResult {
	if err := ctx.Err(); err != nil {
		return entity.DeliveryFailed("smtp send aborted: %v", err)
	}
	if email.ToEmail == "" {
		return entity.DeliveryFailed("recipient email is required")
	}
	if email.FromEmail == "" {
		return entity.DeliveryFailed("sender email is required")
	}

	messageID := newMessageID(email.FromEmail)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", email.FromEmail, email.FromName)
	m.SetHeader("To", email.ToEmail)
	m.SetHeader("Subject", email.Subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", email.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return entity.DeliveryFailed("smtp send failed: %v", err)
	}

	return entity.DeliveryResult{Success: true, MessageID: messageID}
}

func newMessageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
