// Package mail sends transactional email.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host   string
	port   string
	sender string
}

// NewSMTPMailer creates a mailer pointed at the given relay.
func NewSMTPMailer(host, port, sender string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, sender: sender}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(m.sender, to, subject, body)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, nil, m.sender, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@haven>\r\n", uuid.New().String())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.String()
}

// ShareSubject is the subject line for a shared article.
func ShareSubject(username string) string {
	return fmt.Sprintf("%s shared an article with you", username)
}

// ShareBody composes the body for a shared article email.
func ShareBody(username, title, link string) string {
	return fmt.Sprintf("%s shared an article with you via Haven.\n\n%s\n%s\n", username, title, link)
}

// ArticleLink derives the canonical article URL from the configured host.
func ArticleLink(appHost, slug string) string {
	return strings.TrimRight(appHost, "/") + "/api/articles/" + slug
}
