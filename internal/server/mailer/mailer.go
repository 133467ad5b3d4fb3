// Package mailer delivers verification emails.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/couplediaries/couplediaries/internal/logging"
)

// Mailer delivers verification links.
type Mailer interface {
	SendVerification(ctx context.Context, to, link string) error
}

// LogMailer writes the verification link to the log instead of sending it.
// It is used when no SMTP server is configured.
type LogMailer struct {
	logger logging.Logger
}

// NewLogMailer returns a Mailer that only logs the link.
func NewLogMailer(l logging.Logger) *LogMailer {
	return &LogMailer{logger: l.With("module", "mailer")}
}

func (m *LogMailer) SendVerification(ctx context.Context, to, link string) error {
	m.logger.Info(ctx, "verification email", "to", to, "link", link)
	return nil
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends plain-text mail through an SMTP relay.
type SMTPMailer struct {
	addr     string
	from     string
	auth     smtp.Auth
	sendMail sendMailFunc
}

// NewSMTPMailer builds a mailer for addr ("host:port"). PLAIN auth is used
// when user is not empty.
func NewSMTPMailer(addr, user, password, from string) *SMTPMailer {
	m := &SMTPMailer{addr: addr, from: from, sendMail: smtp.SendMail}
	if user != "" {
		host, _, _ := strings.Cut(addr, ":")
		m.auth = smtp.PlainAuth("", user, password, host)
	}
	return m
}

func (m *SMTPMailer) SendVerification(ctx context.Context, to, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("invalid recipient %q", to)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Verify your Couple Diaries email\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString("Welcome to Couple Diaries!\r\n\r\n")
	b.WriteString("Open the link below to verify your email address:\r\n")
	b.WriteString(link + "\r\n")

	if err := m.sendMail(m.addr, m.auth, m.from, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// New returns an SMTPMailer when addr is set and a LogMailer otherwise.
func New(addr, user, password, from string, l logging.Logger) Mailer {
	if addr == "" {
		return NewLogMailer(l)
	}
	return NewSMTPMailer(addr, user, password, from)
}
