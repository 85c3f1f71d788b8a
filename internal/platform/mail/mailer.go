// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

// Package mail provides outbound email delivery for the signup flow.
//
// # Architecture
//
// The domain layer depends on the [Mailer] interface only. Two
// implementations exist: an SMTP mailer for deployments and a log-only
// mailer for development, selected in main from configuration. Delivery
// failure is returned to the caller — the signup flow treats it as a hard
// failure rather than silently dropping the confirmation code.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer delivers a single plain-text message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// # SMTP Delivery

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTPMailer constructs an [SMTPMailer]. All parameters come from the
// application config; no environment variables are read here.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

// Send delivers the message synchronously over SMTP.
func (mailer *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	// net/smtp has no context support; honour cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mail: send aborted: %w", err)
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + mailer.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", mailer.user, mailer.pass, mailer.host)
	if err := smtp.SendMail(mailer.host+":"+mailer.port, auth, mailer.from, []string{to}, message); err != nil {
		return fmt.Errorf("mail: smtp delivery to %s failed: %w", to, err)
	}

	return nil
}

// # Development Delivery

// LogMailer writes the message to the structured log instead of sending it.
// Used in development where no SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and always succeeds.
func (mailer *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	mailer.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
