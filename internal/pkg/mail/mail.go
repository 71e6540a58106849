package mail

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer defines the outgoing mail operations
type Mailer interface {
	SendWelcomeEmail(toEmail, toName string) error
	SendPasswordResetEmail(toEmail, token string) error
}

// Sender delivers a composed message
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	FrontendURL string
}

// Service implements Mailer over SMTP
type Service struct {
	config SMTPConfig
	sender Sender
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a mail Service. With no host configured mails are
// logged and dropped.
func NewService(config SMTPConfig, logger zerolog.Logger) *Service {
	var sender Sender
	if config.Host != "" {
		sender = gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	}
	return NewServiceWithSender(config, sender, logger)
}

// NewServiceWithSender creates a Service around an explicit sender.
func NewServiceWithSender(config SMTPConfig, sender Sender, logger zerolog.Logger) *Service {
	if config.FrontendURL == "" {
		config.FrontendURL = "http://localhost:5173"
	}
	return &Service{config: config, sender: sender, logger: logger, now: time.Now}
}

// ResetLink builds the front-end link carrying a reset token.
func (s *Service) ResetLink(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.config.FrontendURL, "/"), url.QueryEscape(token))
}

// SendWelcomeEmail greets a newly registered user
func (s *Service) SendWelcomeEmail(toEmail, toName string) error {
	subject := "CampusClubs'a Hoş Geldiniz"
	text := fmt.Sprintf("Merhaba %s,\n\nCampusClubs hesabınız oluşturuldu. Kulüpleri keşfetmeye hemen başlayabilirsiniz.", toName)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif;"><h2>Hoş Geldiniz!</h2><p>Merhaba %s,</p><p>CampusClubs hesabınız oluşturuldu. Kulüpleri keşfetmeye hemen başlayabilirsiniz.</p></div>`, toName)
	return s.send(toEmail, subject, text, html)
}

// SendPasswordResetEmail mails the reset link for token
func (s *Service) SendPasswordResetEmail(toEmail, token string) error {
	link := s.ResetLink(token)
	subject := "CampusClubs - Şifre Sıfırlama"
	text := fmt.Sprintf("Şifrenizi sıfırlamak için tıklayın: %s", link)
	html := fmt.Sprintf(`<p>Şifrenizi sıfırlamak için <a href="%s">buraya tıklayın</a>.</p>`, link)
	return s.send(toEmail, subject, text, html)
}

func (s *Service) send(to, subject, text, html string) error {
	if s.sender == nil {
		s.logger.Warn().
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP not configured - email not sent")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(s.domain()))
	msg.SetHeader("Date", s.now().Format(time.RFC1123Z))
	msg.SetHeader("From", s.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	if err := s.sender.DialAndSend(msg); err != nil {
		s.logger.Error().Err(err).Str("to", to).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}

func (s *Service) domain() string {
	if _, d, ok := strings.Cut(s.config.From, "@"); ok {
		return strings.Trim(d, "> ")
	}
	return s.config.Host
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
