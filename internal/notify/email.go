package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailMessage письмо для отправки
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// EmailSender интерфейс отправки email
// Реализации взаимозаменяемы (SendGrid, SMTP, заглушка для тестов)
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SendGridSender отправляет письма через SendGrid API
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       Logger
}

// NewSendGridSender создает отправитель писем через SendGrid
func NewSendGridSender(apiKey, fromEmail, fromName string, log Logger) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

// Send отправляет письмо через SendGrid
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.Body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("notify: sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	s.log.Info("Email sent via sendgrid: to=%s, subject=%q, status=%d", msg.To, msg.Subject, response.StatusCode)
	return nil
}

// StubEmailSender заглушка, используется когда email отключен в конфигурации
type StubEmailSender struct {
	log Logger
}

// NewStubEmailSender создает заглушку отправителя писем
func NewStubEmailSender(log Logger) *StubEmailSender {
	return &StubEmailSender{log: log}
}

// Send логирует письмо без реальной отправки
func (s *StubEmailSender) Send(_ context.Context, msg EmailMessage) error {
	s.log.Info("Email sending disabled, skipping: to=%s, subject=%q", msg.To, msg.Subject)
	return nil
}
