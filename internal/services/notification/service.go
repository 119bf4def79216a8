// Package notification delivers account emails.
package notification

import (
	"context"
	"fmt"

	"emiverify/internal/config"
	"emiverify/internal/logger"

	"gopkg.in/gomail.v2"
)

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends account emails.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, fullName, code string) error
	SendPasswordReset(ctx context.Context, to, fullName, resetLink string) error
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Service renders account emails and hands them to a Sender.
type Service struct {
	sender Sender
}

// NewService picks SMTP when configured and logs messages otherwise.
func NewService(cfg config.MailConfig) *Service {
	if cfg.Enabled() {
		return &Service{sender: NewSMTPSender(cfg)}
	}
	return &Service{sender: LogSender{}}
}

// NewServiceWithSender is used by tests and tools that capture outgoing mail.
func NewServiceWithSender(sender Sender) *Service {
	return &Service{sender: sender}
}

func (s *Service) SendVerificationCode(ctx context.Context, to, fullName, code string) error {
	msg, err := verificationMessage(to, fullName, code)
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (s *Service) SendPasswordReset(ctx context.Context, to, fullName, resetLink string) error {
	msg, err := passwordResetMessage(to, fullName, resetLink)
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// SMTPSender delivers through an SMTP relay with STARTTLS.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}
	logger.WithContext(ctx).Info("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	logger.WithContext(ctx).Info("smtp not configured, email not sent",
		"to", msg.To, "subject", msg.Subject, "body", msg.Text)
	return nil
}
